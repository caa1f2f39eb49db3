package scrollfx

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"
)

// Counter defaults, matching a stiff, slightly underdamped spring.
const (
	DefaultStiffness    = 120.0
	DefaultDamping      = 20.0
	DefaultMass         = 1.0
	DefaultEpsilon      = 0.01
	DefaultCounterStart = "top 80%"

	// maxSpringSteps forces settlement if a spring has not converged after
	// this many integration steps.
	maxSpringSteps = 6000
)

// CounterConfig declares a spring-animated integer.
type CounterConfig struct {
	// Target is the element whose entry into view triggers the counter.
	Target *Target
	// Start is an offset string. Defaults to DefaultCounterStart.
	Start string

	From, To float64

	Stiffness float64
	Damping   float64
	Mass      float64
	// Epsilon is the settle threshold for both distance and velocity.
	Epsilon float64

	// OnChange receives every change of the displayed integer.
	OnChange func(value int)
}

// Counter animates a displayed integer toward a target with a damped
// harmonic spring. The motion is integrated analytically per step, so the
// settle behavior does not depend on frame-rate variance.
type Counter struct {
	env    env
	target *Target
	region *Region
	sub    Subscription

	to       float64
	pos, vel float64
	display  int
	onChange func(int)

	angular, ratio, epsilon float64

	spring   harmonica.Spring
	springDT float32
	steps    int

	triggered bool
	settled   bool
	mounted   bool
	inert     bool
}

// NewCounter creates a counter subscribed to obs.
func NewCounter(obs *Observer, motion MotionPreference, cfg CounterConfig) (*Counter, error) {
	return newCounter(newEnv(obs, motion), cfg)
}

func newCounter(e env, cfg CounterConfig) (*Counter, error) {
	region, err := buildRegion(cfg.Target, cfg.Start, "", nil, false, DefaultCounterStart, DefaultCounterStart)
	if err != nil {
		return nil, err
	}
	region.End = region.Start

	k, c, m := cfg.Stiffness, cfg.Damping, cfg.Mass
	if k <= 0 {
		k = DefaultStiffness
	}
	if c < 0 {
		c = 0
	} else if c == 0 {
		c = DefaultDamping
	}
	if m <= 0 {
		m = DefaultMass
	}
	eps := cfg.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	cn := &Counter{
		env:      e,
		target:   cfg.Target,
		region:   region,
		to:       cfg.To,
		pos:      cfg.From,
		display:  int(math.Round(cfg.From)),
		onChange: cfg.OnChange,
		angular:  math.Sqrt(k / m),
		ratio:    c / (2 * math.Sqrt(k*m)),
		epsilon:  eps,
		mounted:  true,
	}

	if !alive(cn.target) {
		cn.inert = true
		e.log.Warn("counter anchor missing; counter will never start", zap.String("section", e.section))
		e.emit(EventAnchorMissing, nil, 0, 0)
		return cn, nil
	}
	if e.static() {
		cn.triggered = true
		cn.snap()
		return cn, nil
	}

	cn.Tick(e.obs.Current())
	if !cn.triggered {
		cn.sub = e.obs.Subscribe(cn.Tick)
	}
	return cn, nil
}

// Tick triggers the counter once its region activates.
func (c *Counter) Tick(t Tick) {
	if !c.mounted || c.inert || c.triggered {
		return
	}
	if !c.region.Resolve(c.env.obs) {
		return
	}
	if p := c.region.ProgressAt(t.ScrollY); p > 0 {
		c.Trigger()
	}
}

// Trigger starts the spring. Only the first call has any effect.
func (c *Counter) Trigger() {
	if !c.mounted || c.inert || c.triggered {
		return
	}
	c.triggered = true
	c.sub.Unsubscribe()
	c.env.emit(EventCounterTriggered, c.target, 1, c.pos)
}

// Update integrates the spring over dt seconds.
func (c *Counter) Update(dt float32) {
	if !c.mounted || !c.triggered || c.settled || dt <= 0 {
		return
	}
	if dt != c.springDT {
		c.spring = harmonica.NewSpring(float64(dt), c.angular, c.ratio)
		c.springDT = dt
	}
	c.pos, c.vel = c.spring.Update(c.pos, c.vel, c.to)
	c.steps++

	if (math.Abs(c.to-c.pos) < c.epsilon && math.Abs(c.vel) < c.epsilon) || c.steps >= maxSpringSteps {
		c.snap()
		return
	}
	c.show(int(math.Round(c.pos)))
}

// snap lands exactly on the target and stops integrating.
func (c *Counter) snap() {
	c.pos, c.vel = c.to, 0
	c.settled = true
	c.show(int(math.Round(c.to)))
	c.env.emit(EventCounterSettled, c.target, 1, c.to)
}

func (c *Counter) show(v int) {
	if v == c.display {
		return
	}
	c.display = v
	if c.onChange != nil {
		c.onChange(v)
	}
}

// Unmount stops the counter. The displayed value is left where it is.
func (c *Counter) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.sub.Unsubscribe()
}

// Value returns the displayed integer.
func (c *Counter) Value() int { return c.display }

// Current returns the unrounded spring position.
func (c *Counter) Current() float64 { return c.pos }

// Velocity returns the spring velocity.
func (c *Counter) Velocity() float64 { return c.vel }

// Steps returns the number of integration steps taken.
func (c *Counter) Steps() int { return c.steps }

// Triggered reports whether the counter has started.
func (c *Counter) Triggered() bool { return c.triggered }

// Settled reports whether the counter has reached its target.
func (c *Counter) Settled() bool { return c.settled }

// Reached reports whether the displayed value has reached the target, the
// point at which a trailing "+" is shown.
func (c *Counter) Reached() bool { return float64(c.display) >= math.Round(c.to) }

func (c *Counter) update(dt float32) { c.Update(dt) }
func (c *Counter) unmount()          { c.Unmount() }
func (c *Counter) active() bool      { return c.triggered && !c.settled && c.mounted }

func (c *Counter) state() ControllerState {
	return ControllerState{
		Kind:   "counter",
		Target: targetName(c.target),
		Fired:  c.triggered,
		Done:   c.settled,
		Value:  float64(c.display),
	}
}
