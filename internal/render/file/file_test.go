package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crimson-sun/wisp/internal/model"
)

func msg(text string) model.Message {
	return model.Message{
		Timestamp: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Category:  "info",
		Text:      text,
	}
}

func TestAppendAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.ndjson")
	r, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.MessageAppended(msg("one"))
	r.MessageAppended(msg("two"))
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open transcript: %v", err)
	}
	defer f.Close()

	var texts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		texts = append(texts, rec["text"].(string))
	}
	if len(texts) != 2 || texts[0] != "one" || texts[1] != "two" {
		t.Fatalf("expected [one two], got %v", texts)
	}
}

func TestAppend_ToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.ndjson")
	r, _ := New(path)
	r.MessageAppended(msg("first-session"))
	r.Close()

	r2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	r2.MessageAppended(msg("second-session"))
	r2.Close()

	data, _ := os.ReadFile(path)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines after reopen, got %d", lines)
	}
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.ndjson")
	r, err := New(path, WithMaxSize(200), WithBufSize(16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 20; i++ {
		r.MessageAppended(msg(fmt.Sprintf("message number %d with some padding", i)))
	}
	r.Close()

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated file %s.1: %v", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat current file: %v", err)
	}
	if info.Size() > 200 {
		t.Fatalf("current file exceeds max size: %d", info.Size())
	}
}
