package stdout

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/crimson-sun/wisp/internal/model"
)

func TestMessageAppended_Line(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithWriter(&buf))

	r.MessageAppended(model.Message{
		Timestamp: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Category:  "success",
		Label:     "check",
		Text:      "trade executed",
	})

	want := "15:04:05 [success] check trade executed\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestMessageAppended_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithWriter(&buf), WithTimestamps(false))

	r.MessageAppended(model.Message{Category: "info", Text: "hello"})
	if got := buf.String(); got != "[info] hello\n" {
		t.Fatalf("expected '[info] hello', got %q", got)
	}
}

func TestMessageAppended_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithWriter(&buf), WithNDJSON())

	r.MessageAppended(model.Message{
		Timestamp:  time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Category:   "error",
		Text:       "boom",
		Attributes: map[string]any{"code": "E42"},
		Synthetic:  true,
	})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if rec["category"] != "error" || rec["severity"] != "error" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["synthetic"] != true {
		t.Fatalf("expected synthetic flag, got %v", rec)
	}
}

func TestSetTimestamps(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithWriter(&buf), WithTimestamps(false))

	r.MessageAppended(model.Message{Category: "info", Text: "before"})
	r.SetTimestamps(true)
	r.MessageAppended(model.Message{
		Timestamp: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Category:  "info",
		Text:      "after",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if strings.Contains(lines[0], "15:04:05") {
		t.Fatalf("timestamp shown before toggle: %q", lines[0])
	}
	if !strings.Contains(lines[1], "15:04:05") {
		t.Fatalf("timestamp missing after toggle: %q", lines[1])
	}
}

func TestStateChanged(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithWriter(&buf))
	r.StateChanged(model.Connected, model.Reconnecting)
	if !strings.Contains(buf.String(), "-- reconnecting --") {
		t.Fatalf("expected state marker, got %q", buf.String())
	}

	buf.Reset()
	nd := New(WithWriter(&buf), WithNDJSON())
	nd.StateChanged(model.Connected, model.Reconnecting)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("state event is not valid JSON: %v", err)
	}
	if rec["event"] != "state_changed" || rec["to"] != "reconnecting" {
		t.Fatalf("unexpected state event: %v", rec)
	}
}
