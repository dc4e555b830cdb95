package events

import "github.com/atomicstack/deploy-checklist/internal/logging"

type TrackerTracer struct{}

type trackerReason string

const (
	TrackerReasonUnknown   trackerReason = "unknown"
	TrackerReasonDuplicate trackerReason = "duplicate"
)

var Tracker = TrackerTracer{}

func (TrackerTracer) Observe(id string, top, height int) {
	logging.Trace("tracker.observe", map[string]interface{}{"id": id, "top": top, "height": height})
}

func (TrackerTracer) Reject(id string, reason trackerReason) {
	logging.Trace("tracker.reject", map[string]interface{}{"id": id, "reason": reason})
}

func (TrackerTracer) Active(previous, current string) {
	logging.Trace("tracker.active", map[string]interface{}{"previous": previous, "id": current})
}

func (TrackerTracer) Teardown(released int, active string) {
	logging.Trace("tracker.teardown", map[string]interface{}{"released": released, "active": active})
}

func (TrackerTracer) Batch(seq uint64, entries int) {
	logging.Trace("tracker.batch", map[string]interface{}{"seq": seq, "entries": entries})
}
