package ui

import (
	"unicode"

	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) applyCursorStyles() {
	if m.styles.Cursor != nil {
		m.filterCursor.Style = *m.styles.Cursor
	}
	if m.styles.Filter != nil {
		m.filterCursor.TextStyle = *m.styles.Filter
	}
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.query.CursorPos() {
		m.filterCursorDirty = true
	}
}

// queryChanged re-filters after an edit to the query text.
func (m *Model) queryChanged() tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	return m.rebuild(false)
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	q := &m.query
	switch msg.String() {
	case "ctrl+u":
		before := q.CursorPos()
		if !q.Clear() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cleared()
		return true, m.queryChanged()
	case "ctrl+w":
		before := q.CursorPos()
		if !q.DeleteWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.WordBackspace(q.Text)
		return true, m.queryChanged()
	case "ctrl+a":
		before := q.CursorPos()
		if !q.MoveStart() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(q.Cursor)
		return true, nil
	case "ctrl+e":
		before := q.CursorPos()
		if !q.MoveEnd() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(q.Cursor)
		return true, nil
	case "alt+b":
		before := q.CursorPos()
		if !q.MoveWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(q.Cursor)
		return true, nil
	case "alt+f":
		before := q.CursorPos()
		if !q.MoveWordForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(q.Cursor)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		before := q.CursorPos()
		if !q.DeleteRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Backspace(q.Text)
		return true, m.queryChanged()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToQuery(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToQuery(" ")
	case tea.KeyLeft:
		before := q.CursorPos()
		if !q.MoveRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(q.Cursor)
		return true, nil
	case tea.KeyRight:
		before := q.CursorPos()
		if !q.MoveRuneForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(q.Cursor)
		return true, nil
	}
	return false, nil
}

func (m *Model) appendToQuery(text string) (bool, tea.Cmd) {
	before := m.query.CursorPos()
	if !m.query.Insert(text) {
		return false, nil
	}
	m.noteFilterCursorChange(before)
	events.Filter.Append(m.query.Text)
	return true, m.queryChanged()
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	m.applyCursorStyles()
	prompt := "» "
	if m.styles.FilterPrompt != nil {
		prompt = m.styles.FilterPrompt.Render(prompt)
	}
	text := m.query.Text
	if text == "" {
		runes := []rune("(type to search)")
		if m.styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *m.styles.FilterPlaceholder
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(m.styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.query.CursorPos()
	before := render(m.styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(m.styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if m.styles.Cursor != nil {
		cursorStyle := m.styles.Cursor.Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
