package scrollfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default PlayOnce transition settings.
const (
	DefaultDuration float32 = 0.6
)

// DefaultEase is the PlayOnce easing curve.
var DefaultEase ease.TweenFunc = ease.OutCubic

// transition eases every property present in a target property set from the
// target's values at start time to the final values. It may be delayed; the
// starting values are sampled when the delay elapses, not at creation.
//
// There is no global animation manager; the owning controller calls update.
type transition struct {
	tweens [numProps]*gween.Tween
	props  [numProps]Prop
	count  int

	target   *Target
	to       Props
	duration float32
	easeFn   ease.TweenFunc

	delay   float32
	started bool
	done    bool
}

func newTransition(target *Target, to Props, duration float32, fn ease.TweenFunc, delay float32) *transition {
	if fn == nil {
		fn = DefaultEase
	}
	return &transition{target: target, to: to, duration: duration, easeFn: fn, delay: delay}
}

// begin samples the target's current values and builds the tweens.
func (tr *transition) begin() {
	tr.started = true
	tr.count = 0
	for p := Prop(0); p < numProps; p++ {
		if !tr.to.Has(p) {
			continue
		}
		tr.props[tr.count] = p
		tr.tweens[tr.count] = gween.New(float32(tr.target.Get(p)), float32(tr.to.vals[p]), tr.duration, tr.easeFn)
		tr.count++
	}
}

// update advances the transition by dt seconds and writes the eased values.
// If the target has been disposed the transition ends without writing.
func (tr *transition) update(dt float32) {
	if tr.done {
		return
	}
	if !alive(tr.target) {
		tr.done = true
		return
	}
	if !tr.started {
		if dt < tr.delay {
			tr.delay -= dt
			return
		}
		dt -= tr.delay
		tr.delay = 0
		tr.begin()
		if tr.duration <= 0 {
			tr.finish()
			return
		}
	}

	var frame Props
	allDone := true
	for i := 0; i < tr.count; i++ {
		val, finished := tr.tweens[i].Update(dt)
		frame = frame.With(tr.props[i], float64(val))
		if !finished {
			allDone = false
		}
	}
	if allDone {
		// Land exactly on the keyframe values rather than float32 approximations.
		frame = tr.to
	}
	tr.target.Apply(frame)
	tr.done = allDone
}

// finish resolves the transition to its final state. Used on completion and
// on cancellation so content is never left partially visible.
func (tr *transition) finish() {
	if tr.done {
		return
	}
	tr.done = true
	if alive(tr.target) {
		tr.target.Apply(tr.to)
	}
}
