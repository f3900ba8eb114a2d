// Package chat holds the request and response shapes of a chat exchange.
package chat

import "github.com/skydeck/skydeck/internal/domain/activity"

// Turn is one prior message in the conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is an incoming chat message with optional prior history.
// History is supplied by the client on every request; the server keeps no
// conversation state between exchanges.
type Request struct {
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
}

// Usage is the token accounting accumulated over all model calls in an exchange.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the outcome of an exchange. Logs always carries whatever was
// recorded before a failure, so callers can see how far the loop got.
type Response struct {
	Success  bool             `json:"success"`
	Response string           `json:"response,omitempty"`
	Error    string           `json:"error,omitempty"`
	Logs     []activity.Entry `json:"logs"`
	Usage    *Usage           `json:"usage,omitempty"`
}
