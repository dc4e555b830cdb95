package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/logging"
	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"github.com/atomicstack/deploy-checklist/internal/render"
	"github.com/atomicstack/deploy-checklist/internal/tracker"
	uistate "github.com/atomicstack/deploy-checklist/internal/ui/state"
	"github.com/atomicstack/deploy-checklist/internal/visibility"
	tea "github.com/charmbracelet/bubbletea"
)

// visibilityMsg carries one batch of transitions for a subscription.
type visibilityMsg struct {
	sub   uint64
	batch visibility.Batch
}

type visibilityIdleMsg struct {
	sub uint64
}

type visibilityClosedMsg struct {
	sub uint64
}

func waitForVisibility(ctx context.Context, sub *visibility.Subscription, timeout time.Duration) tea.Cmd {
	id := sub.ID()
	return func() tea.Msg {
		waitCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		batch, err := sub.Next(waitCtx)
		switch {
		case err == nil:
			return visibilityMsg{sub: id, batch: batch}
		case errors.Is(err, context.DeadlineExceeded):
			return visibilityIdleMsg{sub: id}
		default:
			return visibilityClosedMsg{sub: id}
		}
	}
}

// armVisibility returns a wait for the live subscription unless one is
// already outstanding.
func (m *Model) armVisibility() tea.Cmd {
	if m.sub == nil || m.quitting || m.waitingSub == m.sub.ID() {
		return nil
	}
	m.waitingSub = m.sub.ID()
	return waitForVisibility(m.ctx, m.sub, m.waitTimeout)
}

func (m *Model) handleVisibilityMsg(msg tea.Msg) tea.Cmd {
	vis, ok := msg.(visibilityMsg)
	if !ok {
		return nil
	}
	if m.sub == nil || vis.sub != m.sub.ID() {
		return nil
	}
	m.waitingSub = 0
	events.Tracker.Batch(vis.batch.Seq, len(vis.batch.Entries))
	m.tracker.Apply(vis.batch.Entries)
	m.syncNavToActive()
	return m.armVisibility()
}

func (m *Model) handleVisibilityIdleMsg(msg tea.Msg) tea.Cmd {
	var id uint64
	switch v := msg.(type) {
	case visibilityIdleMsg:
		id = v.sub
	case visibilityClosedMsg:
		id = v.sub
	default:
		return nil
	}
	if id != m.waitingSub {
		return nil
	}
	m.waitingSub = 0
	if _, idle := msg.(visibilityIdleMsg); idle && m.sub != nil && m.sub.ID() == id && m.sub.Pending() > 0 {
		return m.armVisibility()
	}
	return nil
}

// rebuild re-filters the tree, lays it out again and replaces the tracker
// and visibility subscription with ones for the new anchors. With
// keepPosition the section at the top of the viewport stays there.
func (m *Model) rebuild(keepPosition bool) tea.Cmd {
	anchorID, delta := "", 0
	if keepPosition {
		anchorID, delta = m.topAnchor()
	}

	m.filtered = m.engine.Filter(m.tree, m.query.Text)
	suggestion := ""
	if len(m.filtered) == 0 && m.query.Text != "" {
		suggestion, _ = content.Suggest(m.tree, m.query.Text)
	}
	m.doc = render.Layout(m.filtered, render.Options{
		Width:      m.documentWidth(),
		Styles:     m.styles,
		Markdown:   m.markdown,
		Highlight:  m.highlight,
		Query:      m.query.Text,
		Suggestion: suggestion,
	})
	m.viewport.SetContent(m.doc.Content())

	offset := 0
	if a, ok := m.doc.Section(anchorID); ok {
		if delta >= a.Bounds.Height {
			delta = a.Bounds.Height - 1
		}
		offset = a.Bounds.Top + delta
	}
	m.viewport.SetYOffset(offset)

	if m.tracker != nil {
		m.tracker.UnobserveAll()
	}
	m.tracker = tracker.New(m.filtered.SectionIDs())
	for _, a := range m.doc.Sections {
		if err := m.tracker.Observe(a.ID, tracker.StaticBounds(a.Bounds)); err != nil {
			logging.Error(err)
			m.errMsg = err.Error()
		}
	}

	entries := make([]uistate.NavEntry, 0, len(m.filtered))
	for _, s := range m.filtered {
		entries = append(entries, uistate.NavEntry{ID: s.ID, Title: s.Title, Steps: len(s.Steps)})
	}
	m.nav.SetEntries(entries)

	m.observer.Scroll(m.viewport.YOffset, m.viewport.Height)
	m.sub = m.observer.Subscribe(m.tracker.Anchors())
	m.syncNavToActive()
	events.Nav.Rebuild(m.query.Text, len(m.filtered), len(m.doc.Sections))

	if m.pendingSection != "" && m.viewport.Height > 0 {
		ref := m.pendingSection
		m.pendingSection = ""
		if cmd, ok := m.jumpToRef(ref); ok {
			return cmd
		}
	}
	return m.armVisibility()
}

// topAnchor returns the section at the top of the viewport and how far into
// it the viewport is scrolled.
func (m *Model) topAnchor() (string, int) {
	offset := m.viewport.YOffset
	for _, a := range m.doc.Sections {
		if offset >= a.Bounds.Top && offset < a.Bounds.Bottom() {
			return a.ID, offset - a.Bounds.Top
		}
	}
	return "", 0
}

func (m *Model) syncNavToActive() {
	id, _ := m.tracker.Active()
	m.nav.Select(id)
	m.nav.EnsureCursorVisible(m.navRows())
}

// scrollTo moves the document viewport and reports the new position to the
// visibility observer.
func (m *Model) scrollTo(offset int) tea.Cmd {
	m.viewport.SetYOffset(offset)
	m.observer.Scroll(m.viewport.YOffset, m.viewport.Height)
	events.Nav.Scroll(m.viewport.YOffset, m.viewport.Height)
	return m.armVisibility()
}

func (m *Model) scrollBy(delta int) tea.Cmd {
	return m.scrollTo(m.viewport.YOffset + delta)
}

func (m *Model) jumpTo(id string) tea.Cmd {
	a, ok := m.doc.Section(id)
	if !ok {
		return nil
	}
	events.Nav.Jump(id, a.Bounds.Top)
	return m.scrollTo(a.Bounds.Top)
}

func (m *Model) jumpToRef(ref string) (tea.Cmd, bool) {
	section, ok := content.ResolveSection(m.filtered, ref)
	if !ok {
		m.errMsg = "unknown section " + ref
		return nil, false
	}
	return m.jumpTo(section.ID), true
}
