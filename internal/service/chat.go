package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/semaphore"

	otelx "github.com/skydeck/skydeck/internal/adapter/otel"
	"github.com/skydeck/skydeck/internal/config"
	"github.com/skydeck/skydeck/internal/domain"
	"github.com/skydeck/skydeck/internal/domain/activity"
	"github.com/skydeck/skydeck/internal/domain/chat"
	"github.com/skydeck/skydeck/internal/domain/tool"
	"github.com/skydeck/skydeck/internal/port/llm"
)

// ChatService drives the tool-orchestration loop: it sends the conversation
// to the model, executes any tool calls the model requests, feeds the results
// back, and repeats until the model answers in plain text or the round cap
// is reached.
type ChatService struct {
	llm         llm.Client
	exec        *Executor
	tools       []tool.Spec
	model       string
	temperature float64
	maxTokens   int
	maxRounds   int
	sem         *semaphore.Weighted

	sink    func(exchangeID string, e activity.Entry)
	metrics *otelx.Metrics
}

// NewChatService creates the orchestrator over an LLM client and a tool executor.
func NewChatService(client llm.Client, exec *Executor, oa config.OpenAI, ch config.Chat) *ChatService {
	return &ChatService{
		llm:         client,
		exec:        exec,
		tools:       Registry(),
		model:       oa.Model,
		temperature: oa.Temperature,
		maxTokens:   oa.MaxTokens,
		maxRounds:   ch.MaxToolRounds,
		sem:         semaphore.NewWeighted(ch.MaxConcurrent),
	}
}

// SetActivitySink registers a callback receiving every activity entry as it
// is recorded, tagged with the exchange ID. Used to stream the orchestration
// trail to WebSocket observers.
func (s *ChatService) SetActivitySink(fn func(exchangeID string, e activity.Entry)) {
	s.sink = fn
}

// SetMetrics attaches metric instruments.
func (s *ChatService) SetMetrics(m *otelx.Metrics) {
	s.metrics = m
}

// Exchange runs one chat exchange. It never returns an error: failures are
// reported in the response with the activity log recorded up to that point.
func (s *ChatService) Exchange(ctx context.Context, req chat.Request) *chat.Response {
	exchangeID := uuid.NewString()
	ctx, span := otelx.StartExchangeSpan(ctx, exchangeID)
	defer span.End()

	log := activity.NewLog()
	if s.sink != nil {
		log.OnRecord(func(e activity.Entry) { s.sink(exchangeID, e) })
	}

	log.Record(activity.AgentOrchestrator, "Received", fmt.Sprintf("User: \"%s\"", req.Message), activity.TypeRequest)

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return s.fail(ctx, log, fmt.Sprintf("Request aborted: %v", err))
	}
	defer s.sem.Release(1)

	start := time.Now()
	if s.metrics != nil {
		s.metrics.ExchangesStarted.Add(ctx, 1)
		defer func() {
			s.metrics.ExchangeDuration.Record(ctx, time.Since(start).Seconds())
		}()
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range req.History {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	var usage chat.Usage
	var final string

	// rounds counts completed tool rounds. The model gets one more completion
	// after the cap so the conversation always ends on an assistant turn.
	for rounds := 0; ; rounds++ {
		if rounds == 0 {
			log.Record(activity.AgentOrchestrator, "[LLM] Request", "Sending to "+s.model+"...", activity.TypeLLM)
		} else {
			log.Record(activity.AgentOrchestrator, "[LLM] Continue", "Processing tool results...", activity.TypeLLM)
		}

		completion, err := s.llm.Complete(ctx, llm.Request{
			Messages:    messages,
			Tools:       s.tools,
			Temperature: s.temperature,
			MaxTokens:   s.maxTokens,
		})
		if err != nil {
			return s.fail(ctx, log, fmt.Sprintf("LLM request failed: %v", err))
		}

		usage.PromptTokens += completion.Usage.PromptTokens
		usage.CompletionTokens += completion.Usage.CompletionTokens
		usage.TotalTokens += completion.Usage.TotalTokens
		if s.metrics != nil && completion.Usage.TotalTokens > 0 {
			s.metrics.TokensUsed.Add(ctx, int64(completion.Usage.TotalTokens))
		}

		msg := completion.Message
		messages = append(messages, msg)

		if len(msg.ToolCalls) == 0 || rounds >= s.maxRounds {
			final = msg.Content
			break
		}

		for _, call := range msg.ToolCalls {
			content, err := s.runTool(ctx, log, call)
			if err != nil {
				return s.fail(ctx, log, err.Error())
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    content,
				ToolCallID: call.ID,
			})
		}
	}

	log.Record(activity.AgentOrchestrator, "Complete", "✓ Response generated", activity.TypeComplete)
	if s.metrics != nil {
		s.metrics.ExchangesCompleted.Add(ctx, 1)
	}

	return &chat.Response{
		Success:  true,
		Response: final,
		Logs:     log.Entries(),
		Usage:    &usage,
	}
}

// runTool executes one tool call and returns the content of the tool turn to
// feed back to the model. Tool-level errors (bad arguments, unknown entities)
// become an error payload the model can recover from; anything else aborts
// the exchange.
func (s *ChatService) runTool(ctx context.Context, log *activity.Log, call llm.ToolCall) (string, error) {
	ctx, span := otelx.StartToolCallSpan(ctx, call.ID, call.Name)
	defer span.End()

	agent := activity.AgentFor(call.Name)
	log.Record(activity.AgentOrchestrator, "[A2A] Delegate",
		fmt.Sprintf("→ %s Agent: %s", agentTitle(agent), call.Name), activity.TypeA2A)

	var args map[string]any
	if call.Arguments != "" {
		// A malformed arguments blob is treated as no arguments; the
		// executor's missing-argument checks produce the error the model sees.
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			args = nil
		}
	}
	argsJSON, _ := json.Marshal(args)
	log.Record(agent, "[MCP] Execute",
		fmt.Sprintf("%s(%s)", call.Name, string(argsJSON)), activity.TypeMCP)

	if s.metrics != nil {
		s.metrics.ToolCalls.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", call.Name)))
	}

	result, err := s.exec.Execute(ctx, call.Name, args)
	var payload []byte
	if err != nil {
		if !domain.IsToolError(err) {
			return "", err
		}
		payload, _ = json.Marshal(map[string]string{"error": err.Error()})
	} else {
		payload, err = json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("encode %s result: %w", call.Name, err)
		}
	}

	// The Result entry records the same payload the model is fed.
	log.Record(agent, "Result", activity.TruncateDetails(string(payload), 100), activity.TypeSuccess)
	return string(payload), nil
}

func (s *ChatService) fail(ctx context.Context, log *activity.Log, msg string) *chat.Response {
	log.Record(activity.AgentOrchestrator, "Error", msg, activity.TypeError)
	if s.metrics != nil {
		s.metrics.ExchangesFailed.Add(ctx, 1)
	}
	return &chat.Response{Success: false, Error: msg, Logs: log.Entries()}
}

func agentTitle(a activity.Agent) string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
