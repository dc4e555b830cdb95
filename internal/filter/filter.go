// Package filter derives the visible part of a checklist for a search query.
//
// Filtering is two independent predicates composed:
//
//   - a section is included when its title matches or any of its steps match;
//   - the steps carried by an included section are exactly those steps that
//     match on their own.
//
// A section whose title matches while none of its steps do is therefore kept
// with an empty step list.
package filter

import (
	"strings"

	"github.com/atomicstack/deploy-checklist/internal/content"
	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"golang.org/x/text/cases"
)

// Engine produces filtered views of a tree. Scan is the only implementation
// today; an indexed engine can satisfy the same interface.
type Engine interface {
	Filter(tree content.Tree, query string) content.Tree
}

// Scan re-scans the whole tree on every call.
type Scan struct{}

// Filter implements Engine.
func (Scan) Filter(tree content.Tree, query string) content.Tree {
	return Filter(tree, query)
}

// Filter returns the sections and steps of tree that match query, in
// original order. The input is never modified and the result never shares
// step slices with it.
func Filter(tree content.Tree, query string) content.Tree {
	m := newMatcher(query)
	out := make(content.Tree, 0, len(tree))
	steps := 0
	for _, section := range tree {
		if !m.sectionIncluded(section) {
			continue
		}
		kept := section
		kept.Steps = m.matchingSteps(section)
		steps += len(kept.Steps)
		out = append(out, kept)
	}
	events.Filter.Apply(query, len(out), steps)
	return out
}

// Matches reports whether text contains query, ignoring case. The empty
// query matches everything.
func Matches(text, query string) bool {
	return newMatcher(query).matches(text)
}

// BlockMatches applies the variant-specific block predicate.
func BlockMatches(b content.Block, query string) bool {
	return newMatcher(query).blockMatches(b)
}

// StepMatches reports whether a step's title, description or any block
// matches.
func StepMatches(step content.Step, query string) bool {
	return newMatcher(query).stepMatches(step)
}

// SectionIncluded reports whether a section belongs in the result.
func SectionIncluded(section content.Section, query string) bool {
	return newMatcher(query).sectionIncluded(section)
}

// MatchingSteps returns the steps of section that match on their own.
func MatchingSteps(section content.Section, query string) []content.Step {
	return newMatcher(query).matchingSteps(section)
}

type matcher struct {
	query string
	fold  cases.Caser
}

func newMatcher(query string) *matcher {
	fold := cases.Fold()
	return &matcher{query: fold.String(query), fold: fold}
}

func (m *matcher) matches(text string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(m.fold.String(text), m.query)
}

func (m *matcher) blockMatches(b content.Block) bool {
	switch v := b.(type) {
	case content.Command:
		for _, line := range v.Commands {
			if m.matches(line) {
				return true
			}
		}
		return false
	case content.Pitfall:
		return m.matches(v.Title) || m.matches(v.Content) || m.matches(v.Fix)
	case content.Text:
		return m.matches(v.Content)
	default:
		return false
	}
}

func (m *matcher) stepMatches(step content.Step) bool {
	if m.matches(step.Title) || m.matches(step.Description) {
		return true
	}
	for _, b := range step.Blocks {
		if m.blockMatches(b) {
			return true
		}
	}
	return false
}

func (m *matcher) sectionIncluded(section content.Section) bool {
	if m.matches(section.Title) {
		return true
	}
	for _, step := range section.Steps {
		if m.stepMatches(step) {
			return true
		}
	}
	return false
}

func (m *matcher) matchingSteps(section content.Section) []content.Step {
	if len(section.Steps) == 0 {
		return section.Steps
	}
	steps := make([]content.Step, 0, len(section.Steps))
	for _, step := range section.Steps {
		if m.stepMatches(step) {
			steps = append(steps, step)
		}
	}
	return steps
}
