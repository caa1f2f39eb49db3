package scrollfx

import (
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Stagger defaults.
const (
	DefaultInterval = 0.08
	DefaultBatchMax = 6
)

// startSlack absorbs float32 frame steps accumulating just short of a
// scheduled start.
const startSlack = 1e-6

// StaggerConfig declares an ordered group reveal.
type StaggerConfig struct {
	// Targets are revealed in slice order.
	Targets []*Target
	// Anchor triggers the group. Defaults to the targets' common parent, or
	// the first target when they do not share one.
	Anchor *Target
	// Start is an offset string (see ParseOffset). Defaults to DefaultStart.
	Start string

	Timeline *Timeline
	// Interval is the delay in seconds between consecutive item starts.
	Interval float64
	Duration float32
	Ease     ease.TweenFunc
	// BatchMax bounds how many items are released together. It shapes
	// allocation only; start times are always index × Interval.
	BatchMax int
}

type staggerItem struct {
	target  *Target
	startAt float64
	tr      *transition
	begun   bool
}

// Stagger reveals a group of sibling targets in order once a shared region
// first activates. It fires at most once per mount.
type Stagger struct {
	env      env
	items    []staggerItem
	timeline *Timeline
	interval float64
	duration float32
	easeFn   ease.TweenFunc
	batchMax int

	region *Region
	sub    Subscription

	clock    float64
	released int
	batches  int
	started  int

	fired   bool
	mounted bool
	inert   bool
}

// NewStagger creates a stagger subscribed to obs.
func NewStagger(obs *Observer, motion MotionPreference, cfg StaggerConfig) (*Stagger, error) {
	return newStagger(newEnv(obs, motion), cfg)
}

func newStagger(e env, cfg StaggerConfig) (*Stagger, error) {
	if cfg.Timeline == nil {
		return nil, ErrNoTimeline
	}
	anchor := cfg.Anchor
	if anchor == nil {
		anchor = commonParent(cfg.Targets)
	}
	region, err := buildRegion(anchor, cfg.Start, "", nil, false, DefaultStart, DefaultEnd)
	if err != nil {
		return nil, err
	}
	// PlayOnce semantics only need activation, so the region collapses to
	// its start line.
	region.End = region.Start

	s := &Stagger{
		env:      e,
		timeline: cfg.Timeline,
		interval: cfg.Interval,
		duration: cfg.Duration,
		easeFn:   cfg.Ease,
		batchMax: cfg.BatchMax,
		region:   region,
		mounted:  true,
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.duration <= 0 {
		s.duration = DefaultDuration
	}
	if s.easeFn == nil {
		s.easeFn = DefaultEase
	}
	if s.batchMax <= 0 {
		s.batchMax = DefaultBatchMax
	}

	for _, t := range cfg.Targets {
		if !alive(t) {
			continue
		}
		s.items = append(s.items, staggerItem{target: t})
	}
	for i := range s.items {
		s.items[i].startAt = float64(i) * s.interval
	}

	if len(s.items) == 0 || !alive(anchor) {
		s.inert = true
		e.log.Warn("stagger has no targets or anchor; group will never fire", zap.String("section", e.section))
		e.emit(EventAnchorMissing, anchor, 0, 0)
		return s, nil
	}

	end := s.timeline.End()
	if e.static() {
		for i := range s.items {
			s.items[i].target.Apply(end)
		}
		s.fired = true
		return s, nil
	}

	start := s.timeline.Start()
	for i := range s.items {
		s.items[i].target.Apply(start)
	}
	s.Tick(e.obs.Current())
	if !s.fired {
		s.sub = e.obs.Subscribe(s.Tick)
	}
	return s, nil
}

// commonParent returns the shared parent of targets, or the first target.
func commonParent(targets []*Target) *Target {
	if len(targets) == 0 {
		return nil
	}
	p := targets[0].Parent
	for _, t := range targets[1:] {
		if t == nil || t.Parent != p {
			p = nil
			break
		}
	}
	if p != nil {
		return p
	}
	return targets[0]
}

// Tick checks region activation only.
func (s *Stagger) Tick(t Tick) {
	if !s.mounted || s.inert || s.fired {
		return
	}
	if !s.region.Resolve(s.env.obs) {
		return
	}
	p := s.region.ProgressAt(t.ScrollY)
	if p <= 0 {
		return
	}
	s.fired = true
	s.sub.Unsubscribe()
	s.env.emit(EventRevealFired, s.region.Anchor, p, float64(len(s.items)))
	s.advance(0)
}

// Update advances the group clock by dt seconds.
func (s *Stagger) Update(dt float32) {
	if !s.mounted || !s.fired || s.inert {
		return
	}
	s.advance(float64(dt))
}

func (s *Stagger) advance(dt float64) {
	s.clock += dt

	// Release whole sub-groups once the first item of each is due.
	for s.released < len(s.items) && s.due(s.released) {
		end := s.timeline.End()
		last := min(s.released+s.batchMax, len(s.items))
		for i := s.released; i < last; i++ {
			it := &s.items[i]
			it.tr = newTransition(it.target, end, s.duration, s.easeFn, 0)
		}
		s.released = last
		s.batches++
	}

	for i := 0; i < s.released; i++ {
		it := &s.items[i]
		switch {
		case it.begun:
			it.tr.update(float32(dt))
		case s.due(i):
			it.begun = true
			s.started++
			s.env.emit(EventItemStarted, it.target, 1, float64(i))
			// Feed the overshoot so each item's phase matches its schedule.
			if over := s.clock - it.startAt; over > 0 {
				it.tr.update(float32(over))
			}
		}
	}
}

func (s *Stagger) due(i int) bool {
	return s.clock+startSlack >= s.items[i].startAt
}

// Unmount unsubscribes and resolves every released or pending item of a
// fired group to its final state. Idempotent.
func (s *Stagger) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.sub.Unsubscribe()
	if !s.fired || s.inert {
		return
	}
	end := s.timeline.End()
	for i := range s.items {
		it := &s.items[i]
		if it.tr != nil {
			it.tr.finish()
		} else if alive(it.target) {
			it.target.Apply(end)
		}
	}
}

// Fired reports whether the group has fired.
func (s *Stagger) Fired() bool { return s.fired }

// Len returns the number of live targets in the group.
func (s *Stagger) Len() int { return len(s.items) }

// Started returns how many items have begun their transition.
func (s *Stagger) Started() int { return s.started }

// Batches returns how many sub-groups have been released.
func (s *Stagger) Batches() int { return s.batches }

// Began reports whether item i has begun its transition.
func (s *Stagger) Began(i int) bool { return s.items[i].begun }

// StartTimes returns each item's scheduled start, in seconds after firing.
func (s *Stagger) StartTimes() []float64 {
	out := make([]float64, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].startAt
	}
	return out
}

// Clock returns seconds elapsed since the group fired.
func (s *Stagger) Clock() float64 { return s.clock }

// Done reports whether every item has finished.
func (s *Stagger) Done() bool {
	if s.inert || !s.mounted {
		return true
	}
	if !s.fired {
		return false
	}
	if s.started == 0 && s.released == 0 {
		// Static path: targets were written directly.
		return true
	}
	for i := range s.items {
		if s.items[i].tr == nil || !s.items[i].tr.done {
			return false
		}
	}
	return true
}

func (s *Stagger) update(dt float32) { s.Update(dt) }
func (s *Stagger) unmount()          { s.Unmount() }
func (s *Stagger) active() bool      { return s.fired && !s.Done() }

func (s *Stagger) state() ControllerState {
	return ControllerState{
		Kind:   "stagger",
		Target: targetName(s.region.Anchor),
		Fired:  s.fired,
		Done:   s.Done(),
		Value:  float64(s.started),
	}
}
