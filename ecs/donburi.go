// Package ecs provides ECS adapters for scrollfx.
package ecs

import (
	"github.com/phanxgames/scrollfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for scrollfx controller
// lifecycle events. Subscribe to this in your ECS systems to react to
// reveals firing, pins engaging and counters settling.
var LifecycleEventType = events.NewEventType[scrollfx.Event]()

type donburiSink struct {
	world donburi.World
	only  map[scrollfx.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to LifecycleEventType and can be consumed with events.Subscribe
// and ProcessEvents. When types are given, only those are forwarded.
func NewDonburiSink(world donburi.World, types ...scrollfx.EventType) scrollfx.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.only = make(map[scrollfx.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event scrollfx.Event) {
	if s.only != nil && !s.only[event.Type] {
		return
	}
	LifecycleEventType.Publish(s.world, event)
}
