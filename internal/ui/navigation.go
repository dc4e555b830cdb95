package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/deploy-checklist/internal/backend"
	"github.com/atomicstack/deploy-checklist/internal/logging"
	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"github.com/atomicstack/deploy-checklist/internal/theme"
	"github.com/atomicstack/deploy-checklist/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

type contentEventMsg struct {
	event backend.Event
}

type contentDoneMsg struct{}

type copyResultMsg struct {
	stepID string
	title  string
	lines  int
	err    error
}

func waitForContentEvent(w *backend.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return contentDoneMsg{}
		}
		return contentEventMsg{event: evt}
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	switch keyMsg.String() {
	case "ctrl+c":
		return m.quit("ctrl+c")
	case "esc":
		return m.handleEscapeKey()
	case "up":
		return m.scrollBy(-1)
	case "down":
		return m.scrollBy(1)
	case "pgup":
		return m.scrollBy(-m.pageSize())
	case "pgdown":
		return m.scrollBy(m.pageSize())
	case "home":
		return m.scrollTo(0)
	case "end":
		return m.scrollTo(m.doc.Height())
	case "tab":
		return m.jumpNext()
	case "shift+tab":
		return m.jumpPrev()
	case "ctrl+y":
		return m.copyTopStep()
	case "ctrl+t":
		return m.toggleTheme()
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.query.Text == "" {
		return m.quit("esc")
	}
	before := m.query.CursorPos()
	m.query.Clear()
	m.noteFilterCursorChange(before)
	events.Filter.Cleared()
	return m.queryChanged()
}

func (m *Model) pageSize() int {
	if m.viewport.Height < 1 {
		return 1
	}
	return m.viewport.Height
}

func (m *Model) jumpNext() tea.Cmd {
	entry, ok := m.nav.Next()
	if !ok {
		return nil
	}
	return m.jumpTo(entry.ID)
}

func (m *Model) jumpPrev() tea.Cmd {
	entry, ok := m.nav.Prev()
	if !ok {
		return nil
	}
	return m.jumpTo(entry.ID)
}

func (m *Model) copyTopStep() tea.Cmd {
	anchor, ok := m.doc.StepFrom(m.viewport.YOffset)
	if !ok {
		m.errMsg = "no step in view"
		return nil
	}
	lines := anchor.Step.Commands()
	if len(lines) == 0 {
		m.setInfo(fmt.Sprintf("%s has no commands", anchor.Step.Title))
		return nil
	}
	write := m.clipboard
	stepID, title := anchor.Step.ID, anchor.Step.Title
	return m.bus.Execute(command.Request{
		ID:    "copy:" + stepID,
		Label: title,
		Handler: func() tea.Msg {
			err := write(strings.Join(lines, "\n"))
			return copyResultMsg{stepID: stepID, title: title, lines: len(lines), err: err}
		},
	})
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		err := fmt.Errorf("copy %s: %w", res.stepID, res.err)
		logging.Error(err)
		events.Action.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	info := fmt.Sprintf("Copied %d command(s) from %s", res.lines, res.title)
	m.errMsg = ""
	m.setInfo(info)
	events.Action.Success(info)
	events.Nav.Copy(res.stepID, res.lines)
	return nil
}

func (m *Model) toggleTheme() tea.Cmd {
	m.styles = theme.Toggle(m.styles)
	m.applyCursorStyles()
	events.Nav.Theme(m.styles.Name)
	return m.rebuild(true)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.Nav.Resize(m.width, m.height)
	m.resizeViewport()
	return m.rebuild(true)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollBy(-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.scrollBy(wheelStep)
	}
	return nil
}

func (m *Model) handleContentEventMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(contentEventMsg)
	if !ok {
		return nil
	}
	next := waitForContentEvent(m.backend)
	if update.event.Err != nil {
		logging.Error(update.event.Err)
		m.errMsg = update.event.Err.Error()
		return next
	}
	m.tree = update.event.Tree
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Reloaded %s", update.event.Path))
	return tea.Batch(m.rebuild(true), next)
}

func (m *Model) handleContentDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}
