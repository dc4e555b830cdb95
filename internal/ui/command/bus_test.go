package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ id string }

func TestExecuteRunsHandlerLazily(t *testing.T) {
	ran := false
	cmd := New().Execute(Request{ID: "step", Label: "copy", Handler: func() tea.Msg {
		ran = true
		return doneMsg{id: "step"}
	}})
	if ran {
		t.Fatalf("handler must not run before the command is executed")
	}
	msg := cmd()
	if !ran {
		t.Fatalf("expected handler to run")
	}
	if got, ok := msg.(doneMsg); !ok || got.id != "step" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	if cmd := New().Execute(Request{ID: "x"}); cmd != nil {
		t.Fatalf("expected nil command without a handler")
	}
	if msg := New().Execute(Request{ID: "x", Handler: func() tea.Msg { return nil }})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}

func TestExecuteCollapsesInflightRequests(t *testing.T) {
	bus := New()
	handler := func() tea.Msg { return doneMsg{id: "a"} }
	first := bus.Execute(Request{ID: "a", Handler: handler})
	if first == nil {
		t.Fatalf("expected first request to be accepted")
	}
	if !bus.running("a") {
		t.Fatalf("expected request a to be pending")
	}
	if dup := bus.Execute(Request{ID: "a", Handler: handler}); dup != nil {
		t.Fatalf("expected duplicate request to be dropped")
	}
	if other := bus.Execute(Request{ID: "b", Handler: handler}); other == nil {
		t.Fatalf("expected distinct id to be accepted")
	}
	first()
	if bus.running("a") {
		t.Fatalf("expected request a to be released after running")
	}
	if again := bus.Execute(Request{ID: "a", Handler: handler}); again == nil {
		t.Fatalf("expected request a to be accepted again")
	}
}
