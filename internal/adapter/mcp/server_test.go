package mcp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	skymcp "github.com/skydeck/skydeck/internal/adapter/mcp"
	"github.com/skydeck/skydeck/internal/domain"
	"github.com/skydeck/skydeck/internal/domain/flight"
	"github.com/skydeck/skydeck/internal/domain/tool"
)

// --- Mocks ---

type mockExecutor struct {
	result   any
	err      error
	lastName string
	lastArgs map[string]any
}

func (m *mockExecutor) Execute(_ context.Context, name string, args map[string]any) (any, error) {
	m.lastName = name
	m.lastArgs = args
	return m.result, m.err
}

func testTools() []tool.Spec {
	return []tool.Spec{
		{
			Name:        "search_flight",
			Description: "Search for flight information by flight code",
			Params: []tool.Param{
				{Name: "flight_code", Type: "string", Description: "The flight code", Required: true},
			},
		},
		{
			Name:        "calculate_compensation",
			Description: "Calculate compensation for a delayed flight",
			Params: []tool.Param{
				{Name: "delay_minutes", Type: "number", Description: "Delay in minutes", Required: true},
				{Name: "ticket_price", Type: "number", Description: "Ticket price", Required: true},
			},
		},
	}
}

// --- Tests ---

func TestNewServer(t *testing.T) {
	cfg := skymcp.ServerConfig{
		Addr:    ":3001",
		Name:    "test-server",
		Version: "0.1.0",
	}
	s := skymcp.NewServer(cfg, skymcp.ServerDeps{Tools: testTools()})
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
	if s.MCPServer() == nil {
		t.Fatal("MCPServer() returned nil")
	}
}

func TestServerStartStop(t *testing.T) {
	cfg := skymcp.ServerConfig{
		Addr:    ":0",
		Name:    "test-server",
		Version: "0.1.0",
	}
	s := skymcp.NewServer(cfg, skymcp.ServerDeps{Tools: testTools()})

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestToolRegistration(t *testing.T) {
	s := skymcp.NewServer(skymcp.ServerConfig{Name: "test", Version: "0.1.0"},
		skymcp.ServerDeps{Tools: testTools(), Exec: &mockExecutor{}})

	tools := s.MCPServer().ListTools()
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}

	expectedTools := map[string]bool{
		"search_flight":          false,
		"calculate_compensation": false,
	}
	for name := range tools {
		if _, ok := expectedTools[name]; ok {
			expectedTools[name] = true
		} else {
			t.Errorf("unexpected tool: %s", name)
		}
	}
	for name, found := range expectedTools {
		if !found {
			t.Errorf("expected tool %q not registered", name)
		}
	}
}

func TestHandleToolSuccess(t *testing.T) {
	exec := &mockExecutor{result: &flight.Flight{FlightCode: "VN123", Status: flight.StatusOnTime}}
	s := skymcp.NewServer(skymcp.ServerConfig{Name: "test", Version: "0.1.0"},
		skymcp.ServerDeps{Tools: testTools(), Exec: exec})

	tools := s.MCPServer().ListTools()
	searchTool, ok := tools["search_flight"]
	if !ok {
		t.Fatal("search_flight tool not found")
	}

	result, err := searchTool.Handler(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Name:      "search_flight",
			Arguments: map[string]any{"flight_code": "VN123"},
		},
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %v", result.Content)
	}
	if exec.lastName != "search_flight" {
		t.Errorf("executed %q", exec.lastName)
	}
	if exec.lastArgs["flight_code"] != "VN123" {
		t.Errorf("args = %v", exec.lastArgs)
	}

	text, ok := result.Content[0].(mcplib.TextContent)
	if !ok {
		t.Fatal("expected TextContent")
	}
	var f flight.Flight
	if err := json.Unmarshal([]byte(text.Text), &f); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if f.FlightCode != "VN123" || f.Status != flight.StatusOnTime {
		t.Fatalf("unexpected flight %+v", f)
	}
}

func TestHandleToolError(t *testing.T) {
	exec := &mockExecutor{err: domain.NotFound("Flight not found")}
	s := skymcp.NewServer(skymcp.ServerConfig{Name: "test", Version: "0.1.0"},
		skymcp.ServerDeps{Tools: testTools(), Exec: exec})

	tools := s.MCPServer().ListTools()
	searchTool, ok := tools["search_flight"]
	if !ok {
		t.Fatal("search_flight tool not found")
	}

	result, err := searchTool.Handler(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Name:      "search_flight",
			Arguments: map[string]any{"flight_code": "XX999"},
		},
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for unknown flight")
	}
}

func TestHandleNilExecutor(t *testing.T) {
	s := skymcp.NewServer(skymcp.ServerConfig{Name: "test", Version: "0.1.0"},
		skymcp.ServerDeps{Tools: testTools()})

	tools := s.MCPServer().ListTools()
	searchTool, ok := tools["search_flight"]
	if !ok {
		t.Fatal("search_flight tool not found")
	}

	result, err := searchTool.Handler(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{Name: "search_flight"},
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result when executor is nil")
	}
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		apiKey string
		header string
		want   int
	}{
		{"auth disabled", "", "", http.StatusOK},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"bearer token", "secret", "Bearer secret", http.StatusOK},
		{"plain key", "secret", "secret", http.StatusOK},
		{"wrong key", "secret", "Bearer nope", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			skymcp.AuthMiddleware(tt.apiKey, next).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
