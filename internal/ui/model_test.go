package ui

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/deploy-checklist/internal/backend"
	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/logging"
	"github.com/atomicstack/deploy-checklist/internal/visibility"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	if opts.Tree == nil {
		opts.Tree = content.Default()
	}
	opts.StaticCursor = true
	if opts.VisibilityTimeout == 0 {
		opts.VisibilityTimeout = 20 * time.Millisecond
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(nil) })
	model := NewModel(opts)
	t.Cleanup(model.Close)
	h := NewHarness(model)
	h.Init()
	return h
}

func navIDs(m *Model) []string {
	ids := make([]string, 0, len(m.nav.Entries))
	for _, e := range m.nav.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func activeID(t *testing.T, h *Harness) string {
	t.Helper()
	id, ok := h.Model().ActiveSection()
	if !ok {
		t.Fatalf("expected an active section")
	}
	return id
}

func TestInitialActiveSectionIsFirst(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	if got := activeID(t, h); got != "prerequisites" {
		t.Fatalf("expected prerequisites active, got %q", got)
	}
	if got := h.Model().nav.CurrentID(); got != "prerequisites" {
		t.Fatalf("expected nav cursor on prerequisites, got %q", got)
	}
	view := h.View()
	if !strings.Contains(view, "▌ Prerequisites") {
		t.Fatalf("expected highlighted nav entry, view =\n%s", view)
	}
	if !strings.Contains(view, "» (type to search)") {
		t.Fatalf("expected prompt placeholder, view =\n%s", view)
	}
}

func TestTypingShrinksNavPanel(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	if got := len(h.Model().nav.Entries); got != 8 {
		t.Fatalf("expected 8 sections before filtering, got %d", got)
	}
	h.Type("nginx")
	want := []string{"nginx", "ssl", "security-polish"}
	if got := navIDs(h.Model()); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := h.Model().Query(); got != "nginx" {
		t.Fatalf("expected query nginx, got %q", got)
	}
	view := h.View()
	if strings.Contains(view, "Prerequisites") {
		t.Fatalf("filtered view must not list prerequisites, view =\n%s", view)
	}
	if !strings.Contains(view, "» nginx") {
		t.Fatalf("expected query in prompt, view =\n%s", view)
	}
}

func TestTabJumpUpdatesActiveSection(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Key(tea.KeyTab)
	if got := activeID(t, h); got != "server-setup" {
		t.Fatalf("expected server-setup active after tab, got %q", got)
	}
	anchor, _ := h.Model().doc.Section("server-setup")
	if h.Model().viewport.YOffset != anchor.Bounds.Top {
		t.Fatalf("expected viewport at %d, got %d", anchor.Bounds.Top, h.Model().viewport.YOffset)
	}
	h.Key(tea.KeyShiftTab)
	if got := activeID(t, h); got != "prerequisites" {
		t.Fatalf("expected prerequisites active after shift+tab, got %q", got)
	}
}

func TestScrollToEndActivatesLastSection(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Key(tea.KeyEnd)
	if got := activeID(t, h); got != "monitoring" {
		t.Fatalf("expected monitoring active at the end, got %q", got)
	}
	h.Key(tea.KeyHome)
	if got := activeID(t, h); got != "prerequisites" {
		t.Fatalf("expected prerequisites active at the top, got %q", got)
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := h.Model().viewport.YOffset; got != wheelStep {
		t.Fatalf("expected offset %d, got %d", wheelStep, got)
	}
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := h.Model().viewport.YOffset; got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestRefilterResetsTracker(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Key(tea.KeyTab)
	before := h.Model().tracker
	if got := activeID(t, h); got != "server-setup" {
		t.Fatalf("expected server-setup active, got %q", got)
	}
	h.Type("nginx")
	if h.Model().tracker == before {
		t.Fatalf("expected a fresh tracker after re-filtering")
	}
	if len(before.Anchors()) != 0 {
		t.Fatalf("expected the old tracker to release its anchors")
	}
	if got := h.Model().viewport.YOffset; got != 0 {
		t.Fatalf("expected re-filter to scroll to the top, got %d", got)
	}
	if got := activeID(t, h); got != "nginx" {
		t.Fatalf("expected nginx active, got %q", got)
	}
}

func TestTitleOnlySectionMatch(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Type("Security")
	m := h.Model()
	if got := navIDs(m); !reflect.DeepEqual(got, []string{"security-polish"}) {
		t.Fatalf("expected only security-polish, got %v", got)
	}
	if m.nav.Entries[0].Steps != 0 {
		t.Fatalf("expected a title-only match with no steps, got %d", m.nav.Entries[0].Steps)
	}
	if got := activeID(t, h); got != "security-polish" {
		t.Fatalf("expected security-polish active, got %q", got)
	}
	if view := h.View(); !strings.Contains(view, "no matching steps") {
		t.Fatalf("expected empty section hint, view =\n%s", view)
	}
}

func TestNoMatchesShowsSuggestion(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Type("zzzz")
	m := h.Model()
	if len(m.nav.Entries) != 0 {
		t.Fatalf("expected no sections, got %v", navIDs(m))
	}
	if _, ok := m.ActiveSection(); ok {
		t.Fatalf("expected no active section without anchors")
	}
	if view := h.View(); !strings.Contains(view, `No matches for "zzzz"`) {
		t.Fatalf("expected no-match message, view =\n%s", view)
	}
}

func TestEscapeClearsQueryThenQuits(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Type("nginx")
	h.Key(tea.KeyEsc)
	if got := h.Model().Query(); got != "" {
		t.Fatalf("expected esc to clear the query, got %q", got)
	}
	if got := len(h.Model().nav.Entries); got != 8 {
		t.Fatalf("expected all sections after clearing, got %d", got)
	}
	if h.Quitting() {
		t.Fatalf("esc with a query must not quit")
	}
	h.Key(tea.KeyEsc)
	if !h.Quitting() {
		t.Fatalf("expected esc with an empty query to quit")
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Type("ssl")
	h.Key(tea.KeyCtrlC)
	if !h.Quitting() {
		t.Fatalf("expected ctrl+c to quit")
	}
	if h.View() != "" {
		t.Fatalf("expected an empty view after quitting")
	}
}

func TestCopyTopStepCommands(t *testing.T) {
	var copied string
	h := newTestHarness(t, Options{
		Width:  100,
		Height: 20,
		Clipboard: func(text string) error {
			copied = text
			return nil
		},
	})
	h.Key(tea.KeyCtrlY)
	if !strings.Contains(copied, "dig +short example.com") {
		t.Fatalf("expected DNS commands on the clipboard, got %q", copied)
	}
	if view := h.View(); !strings.Contains(view, "Copied") {
		t.Fatalf("expected copy confirmation, view =\n%s", view)
	}
}

func TestCopyFailureIsReported(t *testing.T) {
	h := newTestHarness(t, Options{
		Width:     100,
		Height:    20,
		Clipboard: func(string) error { return errors.New("no clipboard") },
	})
	h.Key(tea.KeyCtrlY)
	if got := h.Model().errMsg; !strings.Contains(got, "no clipboard") {
		t.Fatalf("expected clipboard error, got %q", got)
	}
}

func TestThemeToggle(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Key(tea.KeyCtrlT)
	if got := h.Model().styles.Name; got != "light" {
		t.Fatalf("expected light theme, got %q", got)
	}
	h.Key(tea.KeyCtrlT)
	if got := h.Model().styles.Name; got != "dark" {
		t.Fatalf("expected dark theme, got %q", got)
	}
}

func TestWindowResizeRelaysDocument(t *testing.T) {
	h := newTestHarness(t, Options{})
	if _, ok := h.Model().ActiveSection(); ok {
		t.Fatalf("expected no active section before the first resize")
	}
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := h.Model()
	if m.viewport.Height != 22 {
		t.Fatalf("expected viewport height 22, got %d", m.viewport.Height)
	}
	if want := 80 - m.navPanelWidth() - 1; m.viewport.Width != want {
		t.Fatalf("expected viewport width %d, got %d", want, m.viewport.Width)
	}
	if got := activeID(t, h); got != "prerequisites" {
		t.Fatalf("expected prerequisites active after resize, got %q", got)
	}
}

func TestResizeKeepsTopSection(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 20})
	h.Key(tea.KeyTab)
	h.Key(tea.KeyTab)
	if got := activeID(t, h); got != "nginx" {
		t.Fatalf("expected nginx active, got %q", got)
	}
	h.Send(tea.WindowSizeMsg{Width: 70, Height: 20})
	anchor, _ := h.Model().doc.Section("nginx")
	if h.Model().viewport.YOffset != anchor.Bounds.Top {
		t.Fatalf("expected nginx to stay at the top, got offset %d want %d", h.Model().viewport.YOffset, anchor.Bounds.Top)
	}
	if got := activeID(t, h); got != "nginx" {
		t.Fatalf("expected nginx active after resize, got %q", got)
	}
}

func TestInitialSectionOption(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20, Section: "ssl"})
	if got := activeID(t, h); got != "ssl" {
		t.Fatalf("expected ssl active, got %q", got)
	}
}

func TestUnknownInitialSectionReportsError(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20, Query: "nginx", Section: "database"})
	if got := h.Model().errMsg; !strings.Contains(got, "unknown section") {
		t.Fatalf("expected unknown section error, got %q", got)
	}
}

func TestContentReloadAppliesTree(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	tree := content.Tree{{
		ID:    "only",
		Title: "Only Section",
		Steps: []content.Step{{ID: "one", Title: "One"}},
	}}
	h.Send(contentEventMsg{event: backend.Event{Path: "checklist.yaml", Tree: tree}})
	if got := navIDs(h.Model()); !reflect.DeepEqual(got, []string{"only"}) {
		t.Fatalf("expected reloaded sections, got %v", got)
	}
	if got := activeID(t, h); got != "only" {
		t.Fatalf("expected only active, got %q", got)
	}
	if view := h.View(); !strings.Contains(view, "Reloaded checklist.yaml") {
		t.Fatalf("expected reload notice, view =\n%s", view)
	}
}

func TestContentReloadErrorKeepsTree(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	h.Send(contentEventMsg{event: backend.Event{Path: "checklist.yaml", Err: errors.New("bad yaml")}})
	if got := len(h.Model().nav.Entries); got != 8 {
		t.Fatalf("expected previous tree to stay, got %d sections", got)
	}
	if view := h.View(); !strings.Contains(view, "Error: bad yaml") {
		t.Fatalf("expected reload error in status line, view =\n%s", view)
	}
}

func TestStaleVisibilityBatchIgnored(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	oldID := h.Model().sub.ID()
	h.Type("nginx")
	h.Send(visibilityMsg{sub: oldID, batch: visibility.Batch{
		Seq:     1,
		Entries: []visibility.Entry{{AnchorID: "ssl", Intersecting: true}},
	}})
	if got := activeID(t, h); got != "nginx" {
		t.Fatalf("stale batch must not move the highlight, got %q", got)
	}
}

func TestIdleWaitRearmsForQueuedTransitions(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	m := h.Model()
	if got := activeID(t, h); got != "prerequisites" {
		t.Fatalf("expected prerequisites active, got %q", got)
	}
	target, ok := m.doc.Section(m.nav.Entries[2].ID)
	if !ok {
		t.Fatalf("expected anchor for %s", m.nav.Entries[2].ID)
	}
	// A wait that timed out while a scroll queued new transitions.
	id := m.sub.ID()
	m.waitingSub = id
	m.observer.Scroll(target.Bounds.Top, m.viewport.Height)
	if m.sub.Pending() == 0 {
		t.Fatalf("expected queued transitions after scrolling")
	}
	h.Send(visibilityIdleMsg{sub: id})
	if n := m.sub.Pending(); n != 0 {
		t.Fatalf("expected queued transitions delivered, %d still pending", n)
	}
	if got := activeID(t, h); got == "prerequisites" {
		t.Fatalf("expected active section to follow the scroll")
	}
}

func TestIdleWaitWithoutTransitionsStaysDisarmed(t *testing.T) {
	h := newTestHarness(t, Options{Width: 100, Height: 20})
	m := h.Model()
	id := m.sub.ID()
	m.waitingSub = id
	h.Send(visibilityIdleMsg{sub: id})
	if m.waitingSub != 0 {
		t.Fatalf("expected no outstanding wait, got sub %d", m.waitingSub)
	}
}
