package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed checklist.yaml
var defaultChecklist []byte

var (
	defaultOnce sync.Once
	defaultTree Tree
)

// Default returns the built-in deployment checklist. The embedded document is
// part of the binary, so a load failure is a build defect and panics.
func Default() Tree {
	defaultOnce.Do(func() {
		tree, err := Load(bytes.NewReader(defaultChecklist))
		if err != nil {
			panic(fmt.Sprintf("embedded checklist: %v", err))
		}
		defaultTree = tree
	})
	return defaultTree
}
