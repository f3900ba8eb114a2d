// Package activity records the per-exchange orchestration trail: every
// delegation, tool execution, and model round-trip that produced a response.
package activity

import (
	"sync"
	"time"
	"unicode/utf8"
)

// Agent identifies which conceptual sub-agent performed a step.
type Agent string

// Known agents. The orchestrator owns the loop; the others are the
// specialists that tool calls are attributed to.
const (
	AgentOrchestrator Agent = "orchestrator"
	AgentFlight       Agent = "flight"
	AgentWeather      Agent = "weather"
	AgentInfo         Agent = "info"
	AgentSupport      Agent = "support"
)

// EntryType classifies a log entry.
type EntryType string

// Entry types in the order they typically appear in an exchange.
const (
	TypeRequest  EntryType = "request"
	TypeLLM      EntryType = "llm"
	TypeA2A      EntryType = "a2a"
	TypeMCP      EntryType = "mcp"
	TypeSuccess  EntryType = "success"
	TypeError    EntryType = "error"
	TypeComplete EntryType = "complete"
)

// Entry is a single step in the orchestration trail.
type Entry struct {
	Agent   Agent     `json:"agent"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
	Type    EntryType `json:"type"`
	Time    time.Time `json:"time"`
}

// Log collects entries for one exchange. It is safe for concurrent use,
// though an exchange records sequentially in practice.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	now      func() time.Time
	onRecord func(Entry)
}

// NewLog creates an empty activity log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// OnRecord registers a callback invoked for every recorded entry, used to
// stream entries to observers while the exchange is still running.
func (l *Log) OnRecord(fn func(Entry)) {
	l.mu.Lock()
	l.onRecord = fn
	l.mu.Unlock()
}

// Record appends an entry stamped with the current time.
func (l *Log) Record(agent Agent, action, details string, typ EntryType) {
	l.mu.Lock()
	e := Entry{Agent: agent, Action: action, Details: details, Type: typ, Time: l.now()}
	l.entries = append(l.entries, e)
	fn := l.onRecord
	l.mu.Unlock()

	if fn != nil {
		fn(e)
	}
}

// Entries returns a copy of the recorded entries in order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// AgentFor maps a tool name to the sub-agent it is attributed to.
// Unrecognized tools fall back to the orchestrator.
func AgentFor(toolName string) Agent {
	switch toolName {
	case "search_flight", "list_flights":
		return AgentFlight
	case "get_weather":
		return AgentWeather
	case "get_airport_info":
		return AgentInfo
	case "find_alternatives", "calculate_compensation":
		return AgentSupport
	default:
		return AgentOrchestrator
	}
}

// TruncateDetails shortens s to at most max bytes with a trailing ellipsis,
// keeping tool results readable in the log without dumping whole result sets.
// The cut backs up to a rune boundary so multi-byte text stays valid UTF-8.
func TruncateDetails(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
