package scrollfx

import (
	"errors"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Mode selects how a Reveal drives its timeline.
type Mode uint8

const (
	// PlayOnce eases to the final keyframe once the region activates, then
	// detaches from scrolling for good.
	PlayOnce Mode = iota
	// Scrub evaluates the timeline at the region's progress on every tick.
	Scrub
)

func (m Mode) String() string {
	if m == Scrub {
		return "scrub"
	}
	return "once"
}

// Default region offsets for reveals: the region starts when the anchor's top
// enters the bottom of the viewport and ends when its bottom leaves the top.
const (
	DefaultStart = "top bottom"
	DefaultEnd   = "bottom top"
)

// ErrNoTimeline is returned when a controller config has no timeline.
var ErrNoTimeline = errors.New("scrollfx: controller has no timeline")

// RevealConfig declares a single-target reveal.
type RevealConfig struct {
	Target *Target
	// Anchor is the region's trigger element. Defaults to Target.
	Anchor *Target
	// Start and End are offset strings (see ParseOffset). Defaults are
	// DefaultStart and DefaultEnd.
	Start, End string
	// EndAnchor resolves End against a different element.
	EndAnchor *Target
	// Pin holds the anchor in place while the region is in progress.
	Pin bool

	Timeline *Timeline
	Mode     Mode

	// Duration and Ease shape the PlayOnce transition. Defaults are
	// DefaultDuration and DefaultEase.
	Duration float32
	Ease     ease.TweenFunc
}

// Reveal drives one Timeline on one Target from a Region.
type Reveal struct {
	env      env
	target   *Target
	timeline *Timeline
	mode     Mode
	duration float32
	easeFn   ease.TweenFunc

	region *Region
	sub    Subscription
	tr     *transition

	progress  float64
	fired     bool
	mounted   bool
	inert     bool
	doneFired bool
}

// NewReveal creates a reveal subscribed to obs. The motion preference is read
// once, here.
func NewReveal(obs *Observer, motion MotionPreference, cfg RevealConfig) (*Reveal, error) {
	return newReveal(newEnv(obs, motion), cfg)
}

func newReveal(e env, cfg RevealConfig) (*Reveal, error) {
	if cfg.Timeline == nil {
		return nil, ErrNoTimeline
	}
	anchor := cfg.Anchor
	if anchor == nil {
		anchor = cfg.Target
	}
	region, err := buildRegion(anchor, cfg.Start, cfg.End, cfg.EndAnchor, cfg.Pin, DefaultStart, DefaultEnd)
	if err != nil {
		return nil, err
	}
	r := &Reveal{
		env:      e,
		target:   cfg.Target,
		timeline: cfg.Timeline,
		mode:     cfg.Mode,
		duration: cfg.Duration,
		easeFn:   cfg.Ease,
		region:   region,
		mounted:  true,
	}
	if r.duration <= 0 {
		r.duration = DefaultDuration
	}
	if r.easeFn == nil {
		r.easeFn = DefaultEase
	}

	if !alive(r.target) || !alive(anchor) {
		r.inert = true
		e.log.Warn("reveal anchor missing; controller will never fire", zap.String("section", e.section))
		e.emit(EventAnchorMissing, r.target, 0, 0)
		return r, nil
	}

	if e.static() {
		r.target.Apply(r.timeline.End())
		r.fired = true
		r.progress = 1
		return r, nil
	}

	if r.mode == PlayOnce {
		r.target.Apply(r.timeline.Start())
	}
	r.Tick(e.obs.Current())
	if r.mounted && !r.fired {
		r.sub = e.obs.Subscribe(r.Tick)
	}
	return r, nil
}

// Tick evaluates the reveal against one observer tick.
func (r *Reveal) Tick(t Tick) {
	if !r.mounted || r.inert || (r.mode == PlayOnce && r.fired) {
		return
	}
	if !r.region.Resolve(r.env.obs) {
		// The anchor went away without an unmount; stop quietly.
		r.region.ReleasePin()
		return
	}
	p := r.region.ProgressAt(t.ScrollY)
	r.progress = p
	r.updatePin(p)

	switch r.mode {
	case Scrub:
		if alive(r.target) {
			r.target.Apply(r.timeline.Evaluate(p))
		}
	case PlayOnce:
		if p > 0 {
			r.fire(p)
		}
	}
}

func (r *Reveal) updatePin(p float64) {
	engaged, released := r.region.updatePin(p)
	if engaged {
		r.env.emit(EventPinEngaged, r.region.Anchor, p, 0)
	}
	if released {
		r.env.emit(EventPinReleased, r.region.Anchor, p, 0)
	}
}

func (r *Reveal) fire(p float64) {
	r.fired = true
	r.sub.Unsubscribe()
	if r.region.Pinned() {
		r.region.ReleasePin()
		r.env.emit(EventPinReleased, r.region.Anchor, p, 0)
	}
	r.tr = newTransition(r.target, r.timeline.End(), r.duration, r.easeFn, 0)
	r.env.emit(EventRevealFired, r.target, p, 0)
}

// Update advances an in-flight PlayOnce transition by dt seconds.
func (r *Reveal) Update(dt float32) {
	if !r.mounted || r.tr == nil || r.tr.done {
		return
	}
	r.tr.update(dt)
	if r.tr.done && !r.doneFired {
		r.doneFired = true
		r.env.emit(EventRevealDone, r.target, 1, 0)
	}
}

// Unmount unsubscribes, resolves an in-flight transition to its final state
// and releases any pin. Idempotent; nothing is written afterwards.
func (r *Reveal) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false
	r.sub.Unsubscribe()
	if r.tr != nil {
		r.tr.finish()
	}
	if r.region.Pinned() {
		r.region.ReleasePin()
		r.env.emit(EventPinReleased, r.region.Anchor, r.progress, 0)
	}
}

// Fired reports whether a PlayOnce reveal has started its transition.
func (r *Reveal) Fired() bool { return r.fired }

// Done reports whether the reveal has nothing left to animate.
func (r *Reveal) Done() bool {
	if r.inert || !r.mounted {
		return true
	}
	if r.mode == Scrub {
		return false
	}
	return r.fired && (r.tr == nil || r.tr.done)
}

// Progress returns the region progress seen on the last tick.
func (r *Reveal) Progress() float64 { return r.progress }

// Region returns the reveal's trigger region.
func (r *Reveal) Region() *Region { return r.region }

// Mounted reports whether Unmount has not been called.
func (r *Reveal) Mounted() bool { return r.mounted }

// Subscribed reports whether the reveal still receives observer ticks.
func (r *Reveal) Subscribed() bool { return r.sub.Active() }

func (r *Reveal) update(dt float32) { r.Update(dt) }
func (r *Reveal) unmount()          { r.Unmount() }
func (r *Reveal) active() bool      { return r.tr != nil && !r.tr.done }

func (r *Reveal) state() ControllerState {
	return ControllerState{
		Kind:     "reveal-" + r.mode.String(),
		Target:   targetName(r.target),
		Fired:    r.fired,
		Done:     r.Done(),
		Progress: r.progress,
	}
}
