package command

import (
	"fmt"
	"sync"

	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Action performs work off the update loop and reports back with a message.
type Action func() tea.Msg

// Request names one unit of background work. Requests sharing an ID are
// collapsed while one of them is still running.
type Request struct {
	ID      string
	Label   string
	Handler Action
}

// Bus runs UI actions as Bubble Tea commands and tracks which are in flight.
type Bus struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func New() *Bus {
	return &Bus{inflight: make(map[string]struct{})}
}

// Execute returns a command running req.Handler, or nil when a request with
// the same ID has not finished yet.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	if !b.claim(req.ID) {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		defer b.release(req.ID)
		msg := req.Handler()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

func (b *Bus) running(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inflight[id]
	return ok
}

func (b *Bus) claim(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[id]; busy {
		return false
	}
	b.inflight[id] = struct{}{}
	return true
}

func (b *Bus) release(id string) {
	b.mu.Lock()
	delete(b.inflight, id)
	b.mu.Unlock()
}
