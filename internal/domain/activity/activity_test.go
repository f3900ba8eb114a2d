package activity

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestLogRecordOrder(t *testing.T) {
	l := NewLog()
	l.Record(AgentOrchestrator, "Received", `User: "hello"`, TypeRequest)
	l.Record(AgentOrchestrator, "[LLM] Request", "Sending to gpt-4o...", TypeLLM)
	l.Record(AgentFlight, "Result", "{}", TypeSuccess)

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Type != TypeRequest || entries[1].Type != TypeLLM || entries[2].Type != TypeSuccess {
		t.Fatalf("entries out of order: %+v", entries)
	}
	if entries[0].Time.IsZero() {
		t.Fatal("expected entries to be timestamped")
	}
}

func TestLogEntriesReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Record(AgentOrchestrator, "Received", "x", TypeRequest)

	first := l.Entries()
	first[0].Action = "mutated"

	if l.Entries()[0].Action != "Received" {
		t.Fatal("Entries must return a copy, not the backing slice")
	}
}

func TestLogOnRecord(t *testing.T) {
	l := NewLog()
	var seen []Entry
	l.OnRecord(func(e Entry) { seen = append(seen, e) })

	l.Record(AgentWeather, "[MCP] Execute", `get_weather({"airport_code":"SGN"})`, TypeMCP)
	l.Record(AgentWeather, "Result", "{}", TypeSuccess)

	if len(seen) != 2 {
		t.Fatalf("expected callback for each entry, got %d", len(seen))
	}
	if seen[0].Agent != AgentWeather || seen[0].Type != TypeMCP {
		t.Fatalf("unexpected first callback entry: %+v", seen[0])
	}
}

func TestAgentFor(t *testing.T) {
	tests := []struct {
		tool string
		want Agent
	}{
		{"search_flight", AgentFlight},
		{"list_flights", AgentFlight},
		{"get_weather", AgentWeather},
		{"get_airport_info", AgentInfo},
		{"find_alternatives", AgentSupport},
		{"calculate_compensation", AgentSupport},
		{"something_else", AgentOrchestrator},
	}
	for _, tt := range tests {
		if got := AgentFor(tt.tool); got != tt.want {
			t.Errorf("AgentFor(%q): expected %q, got %q", tt.tool, tt.want, got)
		}
	}
}

func TestTruncateDetails(t *testing.T) {
	short := `{"status":"On Time"}`
	if got := TruncateDetails(short, 100); got != short {
		t.Errorf("short strings must pass through, got %q", got)
	}

	long := strings.Repeat("x", 150)
	got := TruncateDetails(long, 100)
	if len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 100 chars plus ellipsis, got %d chars", len(got))
	}
}

func TestTruncateDetailsRuneBoundary(t *testing.T) {
	// "Chuyến bay bị hủy" repeated; byte 100 lands inside a multi-byte rune.
	long := strings.Repeat("Chuyến bay bị hủy do thời tiết xấu. ", 5)
	got := TruncateDetails(long, 100)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 103 {
		t.Errorf("expected at most 103 bytes, got %d", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if !strings.HasPrefix(long, strings.TrimSuffix(got, "...")) {
		t.Errorf("truncated text is not a prefix of the input: %q", got)
	}
}

func TestLogTimeMonotonic(t *testing.T) {
	l := NewLog()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	l.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}

	l.Record(AgentOrchestrator, "a", "", TypeRequest)
	l.Record(AgentOrchestrator, "b", "", TypeLLM)

	entries := l.Entries()
	if !entries[1].Time.After(entries[0].Time) {
		t.Fatal("expected timestamps to advance")
	}
}
