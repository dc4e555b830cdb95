// Package visibility reports which anchors of a scrolled document intersect
// the top half of the viewport. It plays the role of an intersection
// observer for a line-addressed terminal view: callers subscribe with a set
// of anchors, push scroll positions, and consume batches of visibility
// transitions from the subscription at their own pace.
package visibility

import (
	"context"
	"errors"
	"sync"
)

// ErrUnsubscribed is returned by Next once a subscription has been cancelled.
var ErrUnsubscribed = errors.New("visibility: subscription cancelled")

// Bounds is a line range within the rendered document.
type Bounds struct {
	Top    int
	Height int
}

// Bottom returns the first line after the range.
func (b Bounds) Bottom() int {
	h := b.Height
	if h < 1 {
		h = 1
	}
	return b.Top + h
}

// Anchor is an observed element: a section id and where it sits.
type Anchor struct {
	ID     string
	Bounds Bounds
}

// Entry is a single visibility transition.
type Entry struct {
	AnchorID     string
	Intersecting bool
}

// Batch groups the transitions delivered together, in delivery order.
type Batch struct {
	Seq     uint64
	Entries []Entry
}

// ObservedRegion returns the half-open line range [top, bottom) that counts
// as "in view" for a viewport scrolled to offset: the viewport shrunk by half
// from the bottom.
func ObservedRegion(offset, height int) (int, int) {
	if height < 1 {
		return offset, offset
	}
	half := (height + 1) / 2
	return offset, offset + half
}

// Intersects reports whether b overlaps the observed region of the viewport.
func Intersects(b Bounds, offset, height int) bool {
	top, bottom := ObservedRegion(offset, height)
	if bottom <= top {
		return false
	}
	return b.Top < bottom && b.Bottom() > top
}

// Observer owns at most one live subscription and feeds it scroll positions.
type Observer struct {
	mu     sync.Mutex
	sub    *Subscription
	nextID uint64
	offset int
	height int
}

// NewObserver returns an observer with no viewport geometry yet.
func NewObserver() *Observer {
	return &Observer{}
}

// Subscribe starts observing anchors, cancelling any previous subscription.
// When the viewport geometry is already known the initial state of every
// anchor is queued right away.
func (o *Observer) Subscribe(anchors []Anchor) *Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sub != nil {
		o.sub.Unsubscribe()
	}
	o.nextID++
	sub := newSubscription(o.nextID, anchors)
	o.sub = sub
	if o.height > 0 {
		sub.evaluate(o.offset, o.height)
	}
	return sub
}

// Scroll records the viewport position and queues transitions on the live
// subscription. It never blocks on the consumer.
func (o *Observer) Scroll(offset, height int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.offset = offset
	o.height = height
	if o.sub != nil {
		o.sub.evaluate(offset, height)
	}
}

// Close cancels the live subscription.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sub != nil {
		o.sub.Unsubscribe()
		o.sub = nil
	}
}

// Subscription is a stream of visibility batches for a fixed anchor set.
type Subscription struct {
	id      uint64
	anchors []Anchor

	mu      sync.Mutex
	state   map[string]bool
	primed  bool
	pending []Entry
	seq     uint64
	closed  bool
	notify  chan struct{}
	done    chan struct{}
}

func newSubscription(id uint64, anchors []Anchor) *Subscription {
	return &Subscription{
		id:      id,
		anchors: append([]Anchor(nil), anchors...),
		state:   make(map[string]bool, len(anchors)),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// ID identifies the subscription; ids increase with every Subscribe.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Anchors returns the observed anchors in registration order.
func (s *Subscription) Anchors() []Anchor {
	return append([]Anchor(nil), s.anchors...)
}

func (s *Subscription) evaluate(offset, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	before := len(s.pending)
	for _, a := range s.anchors {
		now := Intersects(a.Bounds, offset, height)
		prev, seen := s.state[a.ID]
		if !s.primed || !seen || prev != now {
			s.pending = append(s.pending, Entry{AnchorID: a.ID, Intersecting: now})
		}
		s.state[a.ID] = now
	}
	s.primed = true
	if len(s.pending) > before {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

// Next blocks until transitions are pending and returns all of them as one
// batch, oldest first.
func (s *Subscription) Next(ctx context.Context) (Batch, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return Batch{}, ErrUnsubscribed
		}
		if len(s.pending) > 0 {
			entries := s.pending
			s.pending = nil
			s.seq++
			batch := Batch{Seq: s.seq, Entries: entries}
			s.mu.Unlock()
			return batch, nil
		}
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return Batch{}, ctx.Err()
		case <-s.done:
			return Batch{}, ErrUnsubscribed
		case <-s.notify:
		}
	}
}

// Unsubscribe stops delivery and discards pending transitions. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.pending = nil
	close(s.done)
}

// Pending returns the number of transitions queued for the next batch.
func (s *Subscription) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Subscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
