package events

import "github.com/atomicstack/deploy-checklist/internal/logging"

type FilterTracer struct{}

var Filter = FilterTracer{}

// Apply records one evaluation of the filter over the whole tree.
func (FilterTracer) Apply(query string, sections, steps int) {
	logging.Trace("filter.apply", map[string]interface{}{
		"query":    query,
		"sections": sections,
		"steps":    steps,
	})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) WordBackspace(query string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"query": query})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) CursorWord(pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Append(query string) {
	logging.Trace("filter.append", map[string]interface{}{"query": query})
}

func (FilterTracer) Backspace(query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"query": query})
}
