package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

type blockRenderer struct {
	opts     Options
	markdown *glamour.TermRenderer
	mdWidth  int
}

func newBlockRenderer(opts Options) *blockRenderer {
	return &blockRenderer{opts: opts}
}

func (r *blockRenderer) render(b content.Block, width int) string {
	switch v := b.(type) {
	case content.Command:
		return r.command(v, width)
	case content.Pitfall:
		return r.pitfall(v, width)
	case content.Text:
		return r.text(v, width)
	default:
		return ""
	}
}

func (r *blockRenderer) command(c content.Command, width int) string {
	s := r.opts.Styles
	var lines []string
	label := c.Platform
	if label == "" {
		label = "shell"
	}
	lines = append(lines, s.CommandPlatform.Render(label))
	if c.Description != "" {
		lines = append(lines, s.Hint.Render(wrapText(c.Description, width)))
	}
	for _, cmd := range c.Commands {
		text := s.CommandLine.Render(cmd)
		if r.opts.Highlight && c.Language != "" {
			if hl, ok := highlight(cmd, c.Language, s.Syntax); ok {
				text = hl
			}
		}
		lines = append(lines, wrap.String("$ "+text, width))
	}
	return strings.Join(lines, "\n")
}

func (r *blockRenderer) pitfall(p content.Pitfall, width int) string {
	s := r.opts.Styles
	inner := width - 2 - s.PitfallBox.GetHorizontalPadding()
	if inner < 1 {
		inner = 1
	}
	parts := []string{s.PitfallTitle.Render("! " + p.Title)}
	if p.Content != "" {
		parts = append(parts, wrapText(p.Content, inner))
	}
	if p.Fix != "" {
		parts = append(parts, s.PitfallFix.Render(wrapText("Fix: "+p.Fix, inner)))
	}
	return s.PitfallBox.Width(width - 2).Render(strings.Join(parts, "\n"))
}

func (r *blockRenderer) text(t content.Text, width int) string {
	if r.opts.Markdown {
		if out, ok := r.renderMarkdown(t.Content, width); ok {
			return out
		}
	}
	return r.opts.Styles.Text.Render(wrapText(t.Content, width))
}

func (r *blockRenderer) renderMarkdown(src string, width int) (string, bool) {
	if r.markdown == nil || r.mdWidth != width {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.opts.Styles.Markdown),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", false
		}
		r.markdown = md
		r.mdWidth = width
	}
	out, err := r.markdown.Render(src)
	if err != nil {
		return "", false
	}
	out = strings.Trim(out, "\n")
	if strings.TrimSpace(out) == "" {
		return "", false
	}
	return out, true
}

func highlight(src, language, styleName string) (string, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)
	formatter := formatters.Get("terminal256")
	style := styles.Get(styleName)
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return "", false
	}
	return strings.ReplaceAll(buf.String(), "\n", ""), true
}

func wrapText(text string, width int) string {
	if width < 1 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

func displayWidth(text string) int {
	return lipgloss.Width(text)
}
