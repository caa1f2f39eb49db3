package scrollfx

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoKeyframes is returned when a timeline is built without keyframes.
	ErrNoKeyframes = errors.New("scrollfx: timeline has no keyframes")
	// ErrKeyframeOrder is returned when keyframe progress values are not
	// strictly increasing.
	ErrKeyframeOrder = errors.New("scrollfx: keyframe progress must be strictly increasing")
	// ErrKeyframeRange is returned when a keyframe lies outside [0, 1].
	ErrKeyframeRange = errors.New("scrollfx: keyframe progress outside [0, 1]")
)

// Keyframe pins a property set to one progress value.
type Keyframe struct {
	At    float64
	Props Props
}

// Timeline is an ordered list of keyframes for one target. Evaluation is
// linear per property between the two keyframes that define it and bracket
// the requested progress; outside that range the nearest defined value holds.
type Timeline struct {
	keys []Keyframe
}

// NewTimeline validates and copies the keyframes.
func NewTimeline(keys ...Keyframe) (*Timeline, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeyframes
	}
	for i, k := range keys {
		if math.IsNaN(k.At) || k.At < 0 || k.At > 1 {
			return nil, fmt.Errorf("%w: keyframe %d at %g", ErrKeyframeRange, i, k.At)
		}
		if i > 0 && k.At <= keys[i-1].At {
			return nil, fmt.Errorf("%w: keyframe %d at %g follows %g", ErrKeyframeOrder, i, k.At, keys[i-1].At)
		}
	}
	tl := &Timeline{keys: make([]Keyframe, len(keys))}
	copy(tl.keys, keys)
	return tl, nil
}

// MustTimeline is like NewTimeline but panics on invalid keyframes. Intended
// for package-level presets and tests.
func MustTimeline(keys ...Keyframe) *Timeline {
	tl, err := NewTimeline(keys...)
	if err != nil {
		panic(err)
	}
	return tl
}

// FromTo returns a two-keyframe timeline from 0 to 1.
func FromTo(from, to Props) *Timeline {
	return &Timeline{keys: []Keyframe{{At: 0, Props: from}, {At: 1, Props: to}}}
}

// Keyframes returns the keyframes. The returned slice MUST NOT be mutated.
func (tl *Timeline) Keyframes() []Keyframe {
	return tl.keys
}

// Evaluate returns the property set at progress p. p is clamped to [0, 1];
// NaN is treated as 0.
func (tl *Timeline) Evaluate(p float64) Props {
	var out Props
	if tl == nil || len(tl.keys) == 0 {
		return out
	}
	if math.IsNaN(p) {
		p = 0
	}
	p = clamp01(p)

	for prop := Prop(0); prop < numProps; prop++ {
		lo, hi := -1, -1
		for i := range tl.keys {
			if !tl.keys[i].Props.Has(prop) {
				continue
			}
			if tl.keys[i].At <= p {
				lo = i
			}
			if tl.keys[i].At >= p {
				hi = i
				break
			}
		}
		switch {
		case lo < 0 && hi < 0:
			continue
		case lo < 0:
			out = out.With(prop, tl.keys[hi].Props.vals[prop])
		case hi < 0 || lo == hi:
			out = out.With(prop, tl.keys[lo].Props.vals[prop])
		default:
			a, b := tl.keys[lo], tl.keys[hi]
			t := (p - a.At) / (b.At - a.At)
			out = out.With(prop, lerp(a.Props.vals[prop], b.Props.vals[prop], t))
		}
	}
	return out
}

// Start is Evaluate(0).
func (tl *Timeline) Start() Props { return tl.Evaluate(0) }

// End is Evaluate(1), the state every controller settles on.
func (tl *Timeline) End() Props { return tl.Evaluate(1) }
