package content

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveSection maps a user-supplied section reference to a section. It
// tries, in order: exact id, case-insensitive title, title substring, and
// finally the closest fuzzy title match.
func ResolveSection(tree Tree, ref string) (Section, bool) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" || len(tree) == 0 {
		return Section{}, false
	}
	if s, ok := tree.Section(trimmed); ok {
		return s, true
	}
	for _, s := range tree {
		if strings.EqualFold(s.Title, trimmed) {
			return s, true
		}
	}
	lower := strings.ToLower(trimmed)
	for _, s := range tree {
		if strings.Contains(strings.ToLower(s.Title), lower) {
			return s, true
		}
	}
	if idx := closestTitle(tree, trimmed); idx >= 0 {
		return tree[idx], true
	}
	return Section{}, false
}

// Suggest returns the title of the section closest to query, for hinting
// when a filter produced no results.
func Suggest(tree Tree, query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", false
	}
	idx := closestTitle(tree, trimmed)
	if idx < 0 {
		return "", false
	}
	return tree[idx].Title, true
}

func closestTitle(tree Tree, query string) int {
	titles := make([]string, len(tree))
	for i, s := range tree {
		titles[i] = s.Title
	}
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(tree) {
		return -1
	}
	return best.OriginalIndex
}
