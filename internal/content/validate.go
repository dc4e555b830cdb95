package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTree marks content-authoring errors detected at load time.
var ErrInvalidTree = errors.New("invalid content tree")

// Validate checks the structural invariants the viewer relies on: every
// section and step id is present and unique across the whole tree, titles are
// non-empty, and blocks carry their required fields. All problems are
// reported together.
func Validate(tree Tree) error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidTree, fmt.Sprintf(format, args...)))
	}
	seen := make(map[string]string)
	claim := func(id, owner string) {
		if id == "" {
			fail("%s has an empty id", owner)
			return
		}
		if prev, ok := seen[id]; ok {
			fail("duplicate id %q (%s and %s)", id, prev, owner)
			return
		}
		seen[id] = owner
	}
	for i, section := range tree {
		owner := fmt.Sprintf("section %d", i)
		claim(section.ID, owner)
		if strings.TrimSpace(section.Title) == "" {
			fail("section %q has an empty title", section.ID)
		}
		for j, step := range section.Steps {
			claim(step.ID, fmt.Sprintf("step %d of section %q", j, section.ID))
			if strings.TrimSpace(step.Title) == "" {
				fail("step %q has an empty title", step.ID)
			}
			for k, b := range step.Blocks {
				switch v := b.(type) {
				case Command:
					if len(v.Commands) == 0 {
						fail("step %q block %d: command block has no commands", step.ID, k)
					}
				case Pitfall:
					if strings.TrimSpace(v.Title) == "" {
						fail("step %q block %d: pitfall has an empty title", step.ID, k)
					}
				case Text:
				case nil:
					fail("step %q block %d is nil", step.ID, k)
				}
			}
		}
	}
	return errors.Join(errs...)
}
