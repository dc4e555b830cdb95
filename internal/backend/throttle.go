package backend

import (
	"context"
	"sync"
	"time"
)

// reloadGate keeps successive content reloads at least interval apart so an
// editor that writes in several passes does not trigger a parse per pass.
type reloadGate struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newReloadGate(interval time.Duration) *reloadGate {
	if interval <= 0 {
		return &reloadGate{}
	}
	return &reloadGate{interval: interval}
}

// wait blocks until the next reload may run. It returns false when ctx is
// cancelled first.
func (g *reloadGate) wait(ctx context.Context) bool {
	if g == nil || g.interval <= 0 {
		return ctx.Err() == nil
	}
	g.mu.Lock()
	now := time.Now()
	delay := g.next.Sub(now)
	if delay < 0 {
		delay = 0
	}
	g.next = now.Add(delay + g.interval)
	g.mu.Unlock()
	if delay == 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
