package scrollfx

import (
	"math"
	"testing"
)

func TestCounterSettlesInBoundedSteps(t *testing.T) {
	vp, obs := newTestViewport()
	stat := NewTarget("stat", Rect{Y: 1000, Height: 80})
	var seen []int
	c, err := NewCounter(obs, nil, CounterConfig{
		Target:   stat,
		To:       120,
		OnChange: func(v int) { seen = append(seen, v) },
	})
	if err != nil {
		t.Fatal(err)
	}

	c.Update(1.0 / 60)
	if c.Triggered() || c.Steps() != 0 {
		t.Fatal("counter should not integrate before it is triggered")
	}

	// "top 80%" resolves to 1000 - 480 = 520.
	scrollTo(vp, obs, 600)
	if !c.Triggered() {
		t.Fatal("counter should trigger when the stat enters")
	}

	for i := 0; i < 1000 && !c.Settled(); i++ {
		c.Update(1.0 / 60)
	}
	if !c.Settled() {
		t.Fatal("counter did not settle")
	}
	if c.Steps() >= 300 {
		t.Errorf("steps = %d, expected well under 300 for the default spring", c.Steps())
	}
	if c.Value() != 120 || c.Current() != 120 || c.Velocity() != 0 {
		t.Errorf("settled at value %d pos %v vel %v", c.Value(), c.Current(), c.Velocity())
	}
	if !c.Reached() {
		t.Error("Reached should be true once settled")
	}
	if len(seen) == 0 || seen[len(seen)-1] != 120 {
		t.Fatalf("OnChange values = %v", seen)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] == seen[i-1] {
			t.Errorf("OnChange repeated value %d", seen[i])
		}
	}

	steps := c.Steps()
	c.Update(1.0 / 60)
	if c.Steps() != steps {
		t.Error("settled counter kept integrating")
	}
}

func TestCounterFrameRateIndependent(t *testing.T) {
	settle := func(dt float32) float64 {
		_, obs := newTestViewport()
		c, _ := NewCounter(obs, nil, CounterConfig{Target: NewTarget("s", Rect{Y: 5000}), To: 100})
		c.Trigger()
		elapsed := 0.0
		for !c.Settled() {
			c.Update(dt)
			elapsed += float64(dt)
		}
		return elapsed
	}
	at60 := settle(1.0 / 60)
	at144 := settle(1.0 / 144)
	if math.Abs(at60-at144) > 0.1 {
		t.Errorf("settle time at 60Hz %.3fs vs 144Hz %.3fs", at60, at144)
	}
}

func TestCounterReducedMotion(t *testing.T) {
	_, obs := newTestViewport()
	stat := NewTarget("stat", Rect{Y: 1000, Height: 80})
	var seen []int
	c, err := NewCounter(obs, ReducedMotion(true), CounterConfig{
		Target:   stat,
		To:       120,
		OnChange: func(v int) { seen = append(seen, v) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Value() != 120 {
		t.Errorf("first evaluation = %d, want 120", c.Value())
	}
	if len(seen) != 1 || seen[0] != 120 {
		t.Errorf("OnChange values = %v, want exactly [120]", seen)
	}
	for i := 0; i < 10; i++ {
		c.Update(1.0 / 60)
	}
	if len(seen) != 1 || c.Steps() != 0 {
		t.Error("reduced motion counter should never integrate")
	}
	if obs.Len() != 0 {
		t.Error("reduced motion counter should not subscribe")
	}
}

func TestCounterTriggerOnce(t *testing.T) {
	vp, obs := newTestViewport()
	sink := &recordSink{}
	e := newEnv(obs, nil)
	e.sink = sink
	c, _ := newCounter(e, CounterConfig{Target: NewTarget("s", Rect{Y: 1000}), To: 10})

	scrollTo(vp, obs, 600)
	c.Trigger()
	scrollTo(vp, obs, 0)
	scrollTo(vp, obs, 700)
	if sink.count(EventCounterTriggered) != 1 {
		t.Errorf("triggered events = %d, want 1", sink.count(EventCounterTriggered))
	}
	for !c.Settled() {
		c.Update(1.0 / 60)
	}
	if sink.count(EventCounterSettled) != 1 {
		t.Errorf("settled events = %d, want 1", sink.count(EventCounterSettled))
	}
}

func TestCounterUnmount(t *testing.T) {
	vp, obs := newTestViewport()
	var calls int
	c, _ := NewCounter(obs, nil, CounterConfig{
		Target:   NewTarget("s", Rect{Y: 1000}),
		To:       500,
		OnChange: func(int) { calls++ },
	})
	scrollTo(vp, obs, 600)
	c.Update(1.0 / 60)
	c.Unmount()
	before := calls
	for i := 0; i < 30; i++ {
		c.Update(1.0 / 60)
	}
	if calls != before {
		t.Error("unmounted counter reported values")
	}
	c.Trigger()
	c.Unmount()
}

func TestCounterMissingTarget(t *testing.T) {
	vp, obs := newTestViewport()
	c, err := NewCounter(obs, nil, CounterConfig{To: 10})
	if err != nil {
		t.Fatal(err)
	}
	scrollTo(vp, obs, 3000)
	if c.Triggered() || c.Value() != 0 {
		t.Error("counter without a target should never start")
	}
}

func TestCounterMissingTargetReducedMotion(t *testing.T) {
	_, obs := newTestViewport()
	sink := &recordSink{}
	e := newEnv(obs, ReducedMotion(true))
	e.sink = sink

	var changes []int
	c, err := newCounter(e, CounterConfig{To: 120, OnChange: func(v int) { changes = append(changes, v) }})
	if err != nil {
		t.Fatal(err)
	}
	c.Trigger()
	c.Update(1.0 / 60)
	if c.Triggered() || c.Settled() || c.Value() != 0 || len(changes) != 0 {
		t.Errorf("triggered=%v settled=%v value=%d changes=%v", c.Triggered(), c.Settled(), c.Value(), changes)
	}
	if n := sink.count(EventCounterSettled); n != 0 {
		t.Errorf("settled events = %d, want 0", n)
	}
	if n := sink.count(EventAnchorMissing); n != 1 {
		t.Errorf("anchor missing events = %d, want 1", n)
	}
}

func TestCounterStepCap(t *testing.T) {
	_, obs := newTestViewport()
	// No damping at all never converges; the step cap forces settlement.
	c, _ := NewCounter(obs, nil, CounterConfig{Target: NewTarget("s", Rect{Y: 5000}), To: 50, Damping: -1})
	c.Trigger()
	for i := 0; i < maxSpringSteps+10 && !c.Settled(); i++ {
		c.Update(1.0 / 60)
	}
	if !c.Settled() || c.Steps() != maxSpringSteps || c.Value() != 50 {
		t.Errorf("settled=%v steps=%d value=%d", c.Settled(), c.Steps(), c.Value())
	}
}
