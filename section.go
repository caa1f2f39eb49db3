package scrollfx

import (
	"errors"

	"go.uber.org/zap"
)

// ErrSectionUnmounted is returned when a controller is added to a section
// that has already been unmounted.
var ErrSectionUnmounted = errors.New("scrollfx: section is unmounted")

// controller is implemented by every scroll-driven controller.
type controller interface {
	update(dt float32)
	unmount()
	active() bool
	state() ControllerState
}

// ControllerState is a snapshot of one controller for reports and tests.
type ControllerState struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Fired  bool   `json:"fired"`
	Done   bool   `json:"done"`
	// Progress is the last region progress seen.
	Progress float64 `json:"progress"`
	// Value is the displayed counter value, or the number of started items
	// for a stagger.
	Value float64 `json:"value"`
}

// Section owns the controllers of one page section. Unmounting it releases
// every subscription, transition and pin its controllers hold.
type Section struct {
	name    string
	stage   *Stage
	ctrls   []controller
	mounted bool
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Mounted reports whether the section is still mounted.
func (s *Section) Mounted() bool { return s.mounted }

// Controllers returns the number of controllers registered on the section.
func (s *Section) Controllers() int { return len(s.ctrls) }

// env captures the stage state a controller needs at construction. The motion
// preference is read here, once per controller.
func (s *Section) env() env {
	st := s.stage
	return env{
		obs:     st.observer,
		reduced: st.motion != nil && st.motion.ReducedMotion(),
		log:     st.log,
		sink:    st.sink,
		section: s.name,
	}
}

func (s *Section) add(c controller) {
	s.ctrls = append(s.ctrls, c)
}

// Reveal mounts a single-target reveal.
func (s *Section) Reveal(cfg RevealConfig) (*Reveal, error) {
	if !s.mounted {
		return nil, ErrSectionUnmounted
	}
	r, err := newReveal(s.env(), cfg)
	if err != nil {
		return nil, err
	}
	s.add(r)
	return r, nil
}

// Stagger mounts an ordered group reveal.
func (s *Section) Stagger(cfg StaggerConfig) (*Stagger, error) {
	if !s.mounted {
		return nil, ErrSectionUnmounted
	}
	g, err := newStagger(s.env(), cfg)
	if err != nil {
		return nil, err
	}
	s.add(g)
	return g, nil
}

// Pinned mounts a pinned header scrub.
func (s *Section) Pinned(cfg PinnedConfig) (*PinnedScrub, error) {
	if !s.mounted {
		return nil, ErrSectionUnmounted
	}
	ps, err := newPinnedScrub(s.env(), cfg)
	if err != nil {
		return nil, err
	}
	s.add(ps)
	return ps, nil
}

// Counter mounts a spring counter.
func (s *Section) Counter(cfg CounterConfig) (*Counter, error) {
	if !s.mounted {
		return nil, ErrSectionUnmounted
	}
	c, err := newCounter(s.env(), cfg)
	if err != nil {
		return nil, err
	}
	s.add(c)
	return c, nil
}

// States returns a snapshot of every controller, in mount order.
func (s *Section) States() []ControllerState {
	out := make([]ControllerState, len(s.ctrls))
	for i, c := range s.ctrls {
		out[i] = c.state()
	}
	return out
}

// Unmount releases every controller. Idempotent.
func (s *Section) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	for _, c := range s.ctrls {
		c.unmount()
	}
	s.stage.log.Debug("section unmounted", zap.String("section", s.name))
	s.env().emit(EventSectionUnmounted, nil, 0, 0)
}

func (s *Section) update(dt float32) int {
	n := 0
	for _, c := range s.ctrls {
		c.update(dt)
		if c.active() {
			n++
		}
	}
	return n
}
