package scrollfx

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats holds per-frame dispatch and animation metrics.
type FrameStats struct {
	Frame uint64
	// Dispatched is the number of subscriber callbacks invoked.
	Dispatched int
	// Subscribers is the number of live observer subscriptions.
	Subscribers int
	// ActiveControllers counts controllers with an animation in flight.
	ActiveControllers int
	// Writes is the total property writes across the target tree. Only
	// populated in debug mode.
	Writes uint64

	dispatchTime time.Duration
}

// DispatchTime returns how long the observer dispatch took. Only measured in
// debug mode.
func (f FrameStats) DispatchTime() time.Duration { return f.dispatchTime }

func (s *Stage) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	s.log.Debug("frame",
		zap.Uint64("frame", stats.Frame),
		zap.Duration("dispatch", stats.dispatchTime),
		zap.Int("callbacks", stats.Dispatched),
		zap.Int("subscribers", stats.Subscribers),
		zap.Int("active", stats.ActiveControllers),
		zap.Uint64("writes", stats.Writes),
	)
}

// countWrites sums the write counters of t and its descendants.
func countWrites(t *Target) uint64 {
	if t == nil {
		return 0
	}
	n := t.writes
	for _, c := range t.children {
		n += countWrites(c)
	}
	return n
}

// debugMaxTreeDepth is the depth past which Mount warns about a target tree.
const debugMaxTreeDepth = 32

func (s *Stage) debugCheckTreeDepth(t *Target) {
	depth := 0
	for p := t; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		s.log.Warn("target tree too deep",
			zap.String("target", t.Name),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
		)
	}
}
