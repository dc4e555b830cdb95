// Package render lays a filtered checklist out as terminal lines and records
// where every section and step ended up, so the UI can scroll to them and the
// tracker can observe them.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/theme"
	"github.com/atomicstack/deploy-checklist/internal/visibility"
)

const minWidth = 20

// Options controls a single layout pass.
type Options struct {
	Width  int
	Styles *theme.Styles
	// Markdown renders text blocks with glamour instead of plain wrapping.
	Markdown bool
	// Highlight syntax-highlights command lines.
	Highlight bool
	// Query and Suggestion feed the empty-result message.
	Query      string
	Suggestion string
}

// StepAnchor locates a rendered step.
type StepAnchor struct {
	SectionID string
	Step      content.Step
	Bounds    visibility.Bounds
}

// Document is a laid out tree.
type Document struct {
	Lines    []string
	Sections []visibility.Anchor
	Steps    []StepAnchor
}

// Content joins the lines for a viewport.
func (d Document) Content() string {
	return strings.Join(d.Lines, "\n")
}

// Height is the number of rendered lines.
func (d Document) Height() int {
	return len(d.Lines)
}

// Section returns the anchor for a section id.
func (d Document) Section(id string) (visibility.Anchor, bool) {
	for _, a := range d.Sections {
		if a.ID == id {
			return a, true
		}
	}
	return visibility.Anchor{}, false
}

// StepAt returns the step whose lines contain line.
func (d Document) StepAt(line int) (StepAnchor, bool) {
	i := sort.Search(len(d.Steps), func(i int) bool {
		return d.Steps[i].Bounds.Bottom() > line
	})
	if i < len(d.Steps) && d.Steps[i].Bounds.Top <= line {
		return d.Steps[i], true
	}
	return StepAnchor{}, false
}

// StepFrom returns the step containing line, or the first step starting
// below it.
func (d Document) StepFrom(line int) (StepAnchor, bool) {
	if s, ok := d.StepAt(line); ok {
		return s, true
	}
	for _, s := range d.Steps {
		if s.Bounds.Top >= line {
			return s, true
		}
	}
	return StepAnchor{}, false
}

// Layout renders tree for the given options.
func Layout(tree content.Tree, opts Options) Document {
	if opts.Width < minWidth {
		opts.Width = minWidth
	}
	if opts.Styles == nil {
		opts.Styles = theme.Default()
	}
	l := &layout{opts: opts, blocks: newBlockRenderer(opts)}
	if len(tree) == 0 {
		l.noMatches()
		return l.doc
	}
	for i, section := range tree {
		if i > 0 {
			l.blank()
		}
		l.section(section)
	}
	return l.doc
}

type layout struct {
	opts   Options
	blocks *blockRenderer
	doc    Document
}

func (l *layout) line() int {
	return len(l.doc.Lines)
}

func (l *layout) add(text string) {
	l.doc.Lines = append(l.doc.Lines, strings.Split(text, "\n")...)
}

func (l *layout) blank() {
	l.doc.Lines = append(l.doc.Lines, "")
}

func (l *layout) section(section content.Section) {
	s := l.opts.Styles
	top := l.line()
	l.add(s.SectionTitle.Render(section.Title))
	l.add(s.SectionTitle.Render(strings.Repeat("─", minInt(displayWidth(section.Title), l.opts.Width))))
	if section.Description != "" {
		l.add(s.SectionDescription.Render(wrapText(section.Description, l.opts.Width)))
	}
	if len(section.Steps) == 0 && l.opts.Query != "" {
		l.add(s.Hint.Render("no matching steps"))
	}
	for _, step := range section.Steps {
		l.blank()
		l.step(section.ID, step)
	}
	l.doc.Sections = append(l.doc.Sections, visibility.Anchor{
		ID:     section.ID,
		Bounds: visibility.Bounds{Top: top, Height: l.line() - top},
	})
}

func (l *layout) step(sectionID string, step content.Step) {
	s := l.opts.Styles
	top := l.line()
	l.add(s.StepTitle.Render("▸ " + step.Title))
	if step.Description != "" {
		l.add(s.StepDescription.Render(indent(wrapText(step.Description, l.opts.Width-2), 2)))
	}
	for _, b := range step.Blocks {
		l.blank()
		l.add(indent(l.blocks.render(b, l.opts.Width-2), 2))
	}
	l.doc.Steps = append(l.doc.Steps, StepAnchor{
		SectionID: sectionID,
		Step:      step,
		Bounds:    visibility.Bounds{Top: top, Height: l.line() - top},
	})
}

func (l *layout) noMatches() {
	s := l.opts.Styles
	l.add(s.NoMatches.Render(fmt.Sprintf("No matches for %q", l.opts.Query)))
	if l.opts.Suggestion != "" {
		l.add(s.Hint.Render("closest section: " + l.opts.Suggestion))
	}
}

func indent(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
