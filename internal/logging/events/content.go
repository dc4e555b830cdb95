package events

import "github.com/atomicstack/deploy-checklist/internal/logging"

type ContentTracer struct{}

var Content = ContentTracer{}

func (ContentTracer) Load(source string, sections, steps int) {
	logging.Trace("content.load", map[string]interface{}{"source": source, "sections": sections, "steps": steps})
}

func (ContentTracer) Reload(path string, sections int) {
	logging.Trace("content.reload", map[string]interface{}{"path": path, "sections": sections})
}

func (ContentTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("content.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (ContentTracer) Watch(path string) {
	logging.Trace("content.watch", map[string]interface{}{"path": path})
}
