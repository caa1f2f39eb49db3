// Package ecs provides ECS adapters for scrollfx's controller lifecycle
// events.
//
// The primary adapter is [NewDonburiSink], which bridges scrollfx events
// (reveal fired, pin engaged and released, counter settled) into a [Donburi]
// world as typed events. Subscribe to [LifecycleEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
