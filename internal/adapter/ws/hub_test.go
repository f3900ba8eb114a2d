package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/skydeck/skydeck/internal/domain/activity"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("expected non-nil hub")
	}
	if hub.ConnectionCount() != 0 {
		t.Fatalf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}

func TestHubBroadcastNoConnections(t *testing.T) {
	hub := NewHub()

	// Broadcast with no connections should not panic.
	hub.Broadcast(context.Background(), Message{
		Type:    "test",
		Payload: []byte(`{"key":"value"}`),
	})
}

func TestHubBroadcastEventNoConnections(t *testing.T) {
	hub := NewHub()

	// BroadcastEvent with no connections should not panic.
	hub.BroadcastEvent(context.Background(), EventChatActivity, ActivityEvent{
		ExchangeID: "ex-1",
		Entry: activity.Entry{
			Agent:  activity.AgentOrchestrator,
			Action: "Received",
			Type:   activity.TypeRequest,
			Time:   time.Now(),
		},
	})
}

func TestHubBroadcastEventMarshalError(t *testing.T) {
	hub := NewHub()

	// A channel cannot be marshaled to JSON; should log error, not panic.
	hub.BroadcastEvent(context.Background(), "bad", make(chan int))
}

func TestHandleWSBroadcastDelivered(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close(websocket.StatusNormalClosure, "")

	waitForConnections(t, hub, 1)

	// The connection must outlive the upgrade request; a handler that
	// returns early gets its context cancelled and drops the client.
	time.Sleep(200 * time.Millisecond)
	if got := hub.ConnectionCount(); got != 1 {
		t.Fatalf("connection dropped after upgrade: count = %d", got)
	}

	entry := activity.Entry{
		Agent:   activity.AgentOrchestrator,
		Action:  "Received",
		Details: `User: "Hello"`,
		Type:    activity.TypeRequest,
		Time:    time.Now(),
	}
	hub.BroadcastEvent(ctx, EventChatActivity, ActivityEvent{ExchangeID: "ex-1", Entry: entry})

	_, data, err := client.Read(ctx)
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if msg.Type != EventChatActivity {
		t.Errorf("event type = %q, want %q", msg.Type, EventChatActivity)
	}
	var ev ActivityEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if ev.ExchangeID != "ex-1" || ev.Entry.Action != "Received" {
		t.Errorf("event = %+v", ev)
	}
}

func TestHandleWSClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	waitForConnections(t, hub, 1)

	client.Close(websocket.StatusNormalClosure, "")

	waitForConnections(t, hub, 0)
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("connection count = %d, want %d", hub.ConnectionCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubRemoveNonexistent(t *testing.T) {
	hub := NewHub()

	// Removing a connection that was never added should not panic.
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &conn{ws: nil, cancel: cancel}
	hub.remove(c)
}
