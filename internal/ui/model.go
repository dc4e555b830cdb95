package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/deploy-checklist/internal/backend"
	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/filter"
	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"github.com/atomicstack/deploy-checklist/internal/render"
	"github.com/atomicstack/deploy-checklist/internal/theme"
	"github.com/atomicstack/deploy-checklist/internal/tracker"
	"github.com/atomicstack/deploy-checklist/internal/ui/command"
	uistate "github.com/atomicstack/deploy-checklist/internal/ui/state"
	"github.com/atomicstack/deploy-checklist/internal/visibility"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Tree content.Tree
	// Source names where the tree came from, for the status line.
	Source string
	Query  string
	// Section is a section reference to scroll to once the layout is known.
	Section    string
	Width      int
	Height     int
	ShowFooter bool
	Styles     *theme.Styles
	Engine     filter.Engine
	Markdown   bool
	Highlight  bool
	Watcher    *backend.Watcher
	// Clipboard receives copied commands; defaults to the system clipboard.
	Clipboard func(string) error
	// StaticCursor disables prompt cursor blinking.
	StaticCursor bool
	// VisibilityTimeout bounds each wait for visibility batches. Zero waits
	// until the subscription is replaced.
	VisibilityTimeout time.Duration
}

// Model implements the Bubble Tea model for the checklist viewer.
type Model struct {
	tree     content.Tree
	source   string
	filtered content.Tree
	engine   filter.Engine
	doc      render.Document
	query    uistate.Query
	nav      uistate.Nav
	viewport viewport.Model
	styles   *theme.Styles

	markdown  bool
	highlight bool

	observer    *visibility.Observer
	sub         *visibility.Subscription
	waitingSub  uint64
	waitTimeout time.Duration
	tracker     *tracker.Tracker

	ctx    context.Context
	cancel context.CancelFunc

	pendingSection string
	errMsg         string
	infoMsg        string
	infoExpire     time.Time
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	showFooter     bool
	quitting       bool

	backend   *backend.Watcher
	bus       *command.Bus
	clipboard func(string) error

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the viewer for a content tree.
func NewModel(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		tree:           opts.Tree,
		source:         opts.Source,
		engine:         opts.Engine,
		styles:         opts.Styles,
		markdown:       opts.Markdown,
		highlight:      opts.Highlight,
		observer:       visibility.NewObserver(),
		waitTimeout:    opts.VisibilityTimeout,
		ctx:            ctx,
		cancel:         cancel,
		pendingSection: opts.Section,
		showFooter:     opts.ShowFooter,
		backend:        opts.Watcher,
		bus:            command.New(),
		clipboard:      opts.Clipboard,
		nav:            uistate.Nav{Cursor: -1},
	}
	if m.engine == nil {
		m.engine = filter.Scan{}
	}
	if m.styles == nil {
		m.styles = theme.Default()
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.query.Set(opts.Query, len([]rune(opts.Query)))
	m.viewport = viewport.New(0, 0)
	c := cursor.New()
	if opts.StaticCursor {
		c.SetMode(cursor.CursorStatic)
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.applyCursorStyles()
	m.registerHandlers()
	m.resizeViewport()
	m.rebuild(false)
	// Init arms the first visibility wait.
	m.waitingSub = 0
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForContentEvent(m.backend))
	}
	if cmd := m.armVisibility(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Close releases the visibility subscription and any pending waits.
func (m *Model) Close() {
	m.observer.Close()
	if m.tracker != nil {
		m.tracker.UnobserveAll()
	}
	m.cancel()
}

// ActiveSection returns the section currently highlighted in the navigation
// panel.
func (m *Model) ActiveSection() (string, bool) {
	if m.tracker == nil {
		return "", false
	}
	return m.tracker.Active()
}

// Query returns the current filter text.
func (m *Model) Query() string {
	return m.query.Text
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):        m.handleMouseMsg,
		reflect.TypeOf(visibilityMsg{}):       m.handleVisibilityMsg,
		reflect.TypeOf(visibilityIdleMsg{}):   m.handleVisibilityIdleMsg,
		reflect.TypeOf(visibilityClosedMsg{}): m.handleVisibilityIdleMsg,
		reflect.TypeOf(contentEventMsg{}):     m.handleContentEventMsg,
		reflect.TypeOf(contentDoneMsg{}):      m.handleContentDoneMsg,
		reflect.TypeOf(copyResultMsg{}):       m.handleCopyResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) quit(reason string) tea.Cmd {
	m.quitting = true
	events.App.Exit(reason)
	m.Close()
	return tea.Quit
}
