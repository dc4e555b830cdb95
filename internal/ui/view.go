package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	uistate "github.com/atomicstack/deploy-checklist/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	navPanelMinTotal = 60  // below this terminal width the nav panel is hidden
	navPanelFraction = 0.3 // share of the width given to the nav panel
	navPanelMinWidth = 18
	navPanelMaxWidth = 32
	navHeaderRows    = 1
	bottomBarRows    = 2 // status line + filter prompt
	defaultDocWidth  = 80
	infoTTL          = 5 * time.Second
)

const footerHelp = "↑/↓ scroll  tab/shift+tab section  ctrl+y copy  ctrl+t theme  esc clear/quit  ctrl+c quit"

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	body := m.viewport.View()
	if navW := m.navPanelWidth(); navW > 0 {
		rows := m.bodyRows()
		nav := m.renderNav(navW, rows)
		divider := make([]string, rows)
		for i := range divider {
			divider[i] = m.styles.NavBorder.Render("│")
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			strings.Join(nav, "\n"),
			strings.Join(divider, "\n"),
			body,
		)
	}

	bottom := []styledLine{m.statusLine(), {text: m.filterPrompt(), raw: true}}
	if m.showFooter {
		bottom = append(bottom, styledLine{text: footerHelp, style: m.styles.Footer})
	}
	bottom = applyWidth(bottom, m.width)
	if body == "" {
		return renderLines(bottom)
	}
	return body + "\n" + renderLines(bottom)
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: m.styles.Info}
	}
	summary := fmt.Sprintf("%d/%d sections", len(m.filtered), len(m.tree))
	if id, ok := m.ActiveSection(); ok {
		if s, found := m.filtered.Section(id); found {
			summary += " · " + s.Title
		}
	}
	if m.source != "" {
		summary += " · " + m.source
	}
	return styledLine{text: summary, style: m.styles.Footer}
}

// renderNav draws the navigation panel as exactly rows lines of width.
func (m *Model) renderNav(width, rows int) []string {
	lines := make([]string, 0, rows)
	if rows <= 0 {
		return lines
	}
	lines = append(lines, m.styles.NavHeader.Render(padRight("Sections", width)))
	visible, start := m.nav.Visible(rows - navHeaderRows)
	if len(visible) == 0 && len(lines) < rows {
		lines = append(lines, m.styles.NavCount.Render(padRight("  (none)", width)))
	}
	for i, entry := range visible {
		if len(lines) >= rows {
			break
		}
		lines = append(lines, m.navLine(entry, start+i == m.nav.Cursor, width))
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

func (m *Model) navLine(entry uistate.NavEntry, active bool, width int) string {
	count := strconv.Itoa(entry.Steps)
	labelWidth := width - 2 - len(count) - 1
	if labelWidth < 1 {
		labelWidth = 1
	}
	label := padRight(truncateText(entry.Title, labelWidth), labelWidth)
	mark, indicator, item := "  ", m.styles.NavIndicator, m.styles.NavItem
	if active {
		mark, indicator, item = "▌ ", m.styles.NavActiveIndicator, m.styles.NavActive
	}
	return indicator.Render(mark) + item.Render(label) + " " + m.styles.NavCount.Render(count)
}

// navPanelWidth returns the width of the navigation panel, or 0 when the
// terminal is too narrow to split.
func (m *Model) navPanelWidth() int {
	if m.width < navPanelMinTotal {
		return 0
	}
	w := int(float64(m.width) * navPanelFraction)
	if w < navPanelMinWidth {
		w = navPanelMinWidth
	}
	if w > navPanelMaxWidth {
		w = navPanelMaxWidth
	}
	return w
}

// documentWidth is the width the document is laid out for.
func (m *Model) documentWidth() int {
	width := m.width
	if width <= 0 {
		return defaultDocWidth
	}
	if navW := m.navPanelWidth(); navW > 0 {
		width -= navW + 1
	}
	return width
}

func (m *Model) bodyRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - bottomBarRows
	if m.showFooter {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) navRows() int {
	rows := m.bodyRows() - navHeaderRows
	if rows < 0 {
		return 0
	}
	return rows
}

func (m *Model) resizeViewport() {
	m.viewport.Width = m.documentWidth()
	m.viewport.Height = m.bodyRows()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

func padRight(text string, width int) string {
	if gap := width - lipgloss.Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
