package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	SetTraceEnabled(false)

	Trace("filter.apply", map[string]interface{}{"query": "x"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTraceWritesJSONEntry(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		SetOutput(nil)
	})

	Trace("tracker.active", map[string]interface{}{"id": "nginx"})
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
		Time    string                 `json:"time"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry.Event != "tracker.active" {
		t.Fatalf("unexpected event %q", entry.Event)
	}
	if entry.Payload["id"] != "nginx" {
		t.Fatalf("unexpected payload %#v", entry.Payload)
	}
	if entry.Time == "" {
		t.Fatalf("expected timestamp")
	}
}

func TestErrorAppendsToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "checklist.log")
	Configure(path)
	t.Cleanup(func() {
		Close()
		Configure("")
	})

	Error(nil)
	Error(errors.New("content reload failed"))
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "content reload failed") {
		t.Fatalf("expected error in log, got %q", string(data))
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Fatalf("expected a single entry, got %q", string(data))
	}
}
