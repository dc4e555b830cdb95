package events

import "github.com/atomicstack/deploy-checklist/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Jump(id string, line int) {
	logging.Trace("nav.jump", map[string]interface{}{"id": id, "line": line})
}

func (NavTracer) Scroll(offset, height int) {
	logging.Trace("nav.scroll", map[string]interface{}{"offset": offset, "height": height})
}

func (NavTracer) Resize(width, height int) {
	logging.Trace("nav.resize", map[string]interface{}{"width": width, "height": height})
}

func (NavTracer) Rebuild(query string, sections, anchors int) {
	logging.Trace("nav.rebuild", map[string]interface{}{"query": query, "sections": sections, "anchors": anchors})
}

func (NavTracer) Copy(stepID string, lines int) {
	logging.Trace("nav.copy", map[string]interface{}{"step": stepID, "lines": lines})
}

func (NavTracer) Theme(name string) {
	logging.Trace("nav.theme", map[string]interface{}{"theme": name})
}
