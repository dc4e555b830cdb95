// Package tracker keeps the id of the section the reader is looking at.
//
// A Tracker is a passive state machine. The rendering layer registers one
// anchor per rendered section, the visibility source reports transitions,
// and Apply folds them into a single sticky active id: it only changes when
// a registered anchor reports intersecting, never when one leaves the view.
package tracker

import (
	"errors"
	"fmt"

	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"github.com/atomicstack/deploy-checklist/internal/visibility"
)

var (
	// ErrUnknownAnchor is returned when an anchor id is not part of the
	// rendered tree.
	ErrUnknownAnchor = errors.New("tracker: unknown anchor")
	// ErrDuplicateAnchor is returned when an id is observed twice.
	ErrDuplicateAnchor = errors.New("tracker: anchor already observed")
)

// BoundsProvider reports where an anchor currently sits in the document.
type BoundsProvider interface {
	Bounds() visibility.Bounds
}

// StaticBounds is a BoundsProvider for a fixed layout.
type StaticBounds visibility.Bounds

// Bounds implements BoundsProvider.
func (b StaticBounds) Bounds() visibility.Bounds {
	return visibility.Bounds(b)
}

type registration struct {
	id     string
	bounds BoundsProvider
}

// Tracker is not safe for concurrent use; it lives on the UI update loop.
type Tracker struct {
	known    map[string]struct{}
	order    []registration
	observed map[string]int
	active   string
}

// New returns a tracker for the given section ids with no active section.
func New(known []string) *Tracker {
	t := &Tracker{
		known:    make(map[string]struct{}, len(known)),
		observed: make(map[string]int, len(known)),
	}
	for _, id := range known {
		t.known[id] = struct{}{}
	}
	return t
}

// Observe registers the anchor for section id.
func (t *Tracker) Observe(id string, bounds BoundsProvider) error {
	if _, ok := t.known[id]; !ok {
		events.Tracker.Reject(id, events.TrackerReasonUnknown)
		return fmt.Errorf("observe %q: %w", id, ErrUnknownAnchor)
	}
	if _, ok := t.observed[id]; ok {
		events.Tracker.Reject(id, events.TrackerReasonDuplicate)
		return fmt.Errorf("observe %q: %w", id, ErrDuplicateAnchor)
	}
	t.observed[id] = len(t.order)
	t.order = append(t.order, registration{id: id, bounds: bounds})
	b := bounds.Bounds()
	events.Tracker.Observe(id, b.Top, b.Height)
	return nil
}

func (t *Tracker) observedID(id string) bool {
	_, ok := t.observed[id]
	return ok
}

// Anchors returns the registered anchors in registration order, with their
// bounds resolved now.
func (t *Tracker) Anchors() []visibility.Anchor {
	anchors := make([]visibility.Anchor, 0, len(t.order))
	for _, r := range t.order {
		anchors = append(anchors, visibility.Anchor{ID: r.id, Bounds: r.bounds.Bounds()})
	}
	return anchors
}

// Apply folds a batch of transitions into the active id. Entries are taken
// in delivery order and the last intersecting registered anchor wins.
func (t *Tracker) Apply(entries []visibility.Entry) {
	previous := t.active
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		if _, ok := t.observed[e.AnchorID]; !ok {
			continue
		}
		t.active = e.AnchorID
	}
	if t.active != previous {
		events.Tracker.Active(previous, t.active)
	}
}

// Active returns the active section id, if any.
func (t *Tracker) Active() (string, bool) {
	return t.active, t.active != ""
}

// UnobserveAll releases every registration. The active id is kept, but no
// later batch can change it until anchors are observed again.
func (t *Tracker) UnobserveAll() {
	if len(t.order) == 0 {
		return
	}
	events.Tracker.Teardown(len(t.order), t.active)
	t.order = nil
	t.observed = make(map[string]int)
}
