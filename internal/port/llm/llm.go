// Package llm defines the port interface for chat-completion providers.
package llm

import (
	"context"

	"github.com/skydeck/skydeck/internal/domain/tool"
)

// Message roles on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn in the conversation sent to or returned by the model.
// ToolCallID links a tool-role message to the call it answers.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is the model's request to invoke a tool. Arguments is the raw
// JSON object string as produced by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Request is a single chat-completion invocation.
type Request struct {
	Messages    []Message
	Tools       []tool.Spec
	Temperature float64
	MaxTokens   int
}

// Usage is the token accounting for one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the model's reply to a Request.
type Completion struct {
	Message Message
	Usage   Usage
}

// Client is the port interface for an OpenAI-compatible chat-completions API.
type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}
