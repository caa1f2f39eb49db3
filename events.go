package scrollfx

import (
	"go.uber.org/zap"
)

// EventType identifies a controller lifecycle event.
type EventType uint8

const (
	EventSectionMounted   EventType = iota // a section was mounted
	EventSectionUnmounted                  // a section released all its controllers
	EventRevealFired                       // a PlayOnce reveal or stagger group fired
	EventRevealDone                        // a PlayOnce reveal reached its final state
	EventItemStarted                       // one stagger item began its transition
	EventPinEngaged                        // a region pinned its anchor
	EventPinReleased                       // a region released its anchor
	EventCounterTriggered                  // a counter started integrating
	EventCounterSettled                    // a counter reached its target
	EventAnchorMissing                     // a controller was created without a live anchor
)

var eventNames = [...]string{
	"section-mounted", "section-unmounted", "reveal-fired", "reveal-done",
	"item-started", "pin-engaged", "pin-released", "counter-triggered",
	"counter-settled", "anchor-missing",
}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Event carries a lifecycle notification from a controller.
type Event struct {
	Type       EventType
	Section    string
	TargetID   uint32
	TargetName string
	// Progress is the region progress at the time of the event, when
	// meaningful.
	Progress float64
	// Value is the counter value for counter events and the item index for
	// EventItemStarted.
	Value float64
}

// EventSink receives lifecycle events, e.g. to forward them to an ECS.
type EventSink interface {
	EmitEvent(event Event)
}

// env is what a controller captures at construction: the observer it
// subscribes to, the motion preference as read at that moment, and where to
// report events.
type env struct {
	obs     *Observer
	reduced bool
	log     *zap.Logger
	sink    EventSink
	section string
}

func newEnv(obs *Observer, motion MotionPreference) env {
	reduced := motion != nil && motion.ReducedMotion()
	return env{obs: obs, reduced: reduced, log: zap.NewNop()}
}

// static reports whether controllers must render their final state without
// animating: reduced motion or no usable scroll source.
func (e env) static() bool {
	return e.reduced || e.obs == nil || !e.obs.Available()
}

func (e env) emit(typ EventType, t *Target, progress, value float64) {
	ev := Event{Type: typ, Section: e.section, Progress: progress, Value: value}
	if t != nil {
		ev.TargetID = t.ID
		ev.TargetName = t.Name
	}
	if e.log != nil {
		e.log.Debug("scrollfx event",
			zap.Stringer("type", typ),
			zap.String("section", e.section),
			zap.String("target", ev.TargetName),
			zap.Float64("progress", progress),
			zap.Float64("value", value),
		)
	}
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}

// buildRegion parses the offsets of a controller config into a region.
// Empty strings take the given defaults.
func buildRegion(anchor *Target, start, end string, endAnchor *Target, pin bool, defStart, defEnd string) (*Region, error) {
	if start == "" {
		start = defStart
	}
	if end == "" {
		end = defEnd
	}
	so, err := ParseOffset(start)
	if err != nil {
		return nil, err
	}
	eo, err := ParseOffset(end)
	if err != nil {
		return nil, err
	}
	if endAnchor != nil {
		eo.Anchor = endAnchor
	}
	return NewRegion(anchor, so, eo, pin), nil
}
