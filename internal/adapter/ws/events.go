package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/skydeck/skydeck/internal/domain/activity"
)

// Event type constants for WebSocket messages.
const (
	EventChatActivity = "chat.activity"
)

// ActivityEvent is broadcast for every activity entry an exchange records,
// as it happens, so clients can render the orchestration trail live.
type ActivityEvent struct {
	ExchangeID string         `json:"exchange_id"`
	Entry      activity.Entry `json:"entry"`
}

// BroadcastEvent marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
