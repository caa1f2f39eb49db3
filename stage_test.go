package scrollfx

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const frameDT = float32(1.0 / 60)

func newTestStage() (*Stage, *Viewport) {
	vp := NewViewport(800, 600, 5000)
	return NewStage(vp), vp
}

func TestNewStage(t *testing.T) {
	s, _ := newTestStage()
	if s.Root() == nil || s.Root().Name != "root" {
		t.Fatal("stage should have a root target")
	}
	if s.Root().Bounds.Width != 800 || s.Root().Bounds.Height != 600 {
		t.Errorf("root bounds = %+v", s.Root().Bounds)
	}
	if !s.Observer().Available() {
		t.Error("viewport stage should have an available observer")
	}
	if s.Logger() == nil {
		t.Error("logger should default to a no-op logger")
	}
	s.SetLogger(nil)
	if s.Logger() == nil {
		t.Error("SetLogger(nil) should install a no-op logger")
	}
}

func TestStageSectionLifecycle(t *testing.T) {
	s, _ := newTestStage()
	sink := &recordSink{}
	s.SetEventSink(sink)

	card := NewTarget("card", Rect{Y: 1000, Height: 200})
	s.Root().AddChild(card)

	sec := s.Mount("events")
	r, err := sec.Reveal(RevealConfig{Target: card, Timeline: FadeUp(20)})
	if err != nil {
		t.Fatal(err)
	}
	if s.Section("events") != sec || len(s.Sections()) != 1 {
		t.Fatal("section should be registered")
	}

	s.InjectScrollTo(500)
	s.Advance(frameDT)
	if !r.Fired() {
		t.Fatal("reveal should fire on the frame the scroll lands")
	}
	if s.Stats().ActiveControllers != 1 {
		t.Errorf("active = %d, want 1", s.Stats().ActiveControllers)
	}
	if s.Idle() {
		t.Error("stage should not be idle mid-transition")
	}

	for i := 0; i < 60; i++ {
		s.Advance(frameDT)
	}
	if card.Opacity != 1 || !s.Idle() {
		t.Errorf("opacity %v idle %v", card.Opacity, s.Idle())
	}

	sec.Unmount()
	sec.Unmount()
	if sec.Mounted() {
		t.Error("section should be unmounted")
	}
	if _, err := sec.Reveal(RevealConfig{Target: card, Timeline: FadeUp(20)}); !errors.Is(err, ErrSectionUnmounted) {
		t.Errorf("err = %v, want ErrSectionUnmounted", err)
	}
	s.Advance(frameDT)
	if len(s.Sections()) != 0 || s.Section("events") != nil {
		t.Error("unmounted section should be pruned")
	}
	if len(sec.States()) != 1 {
		t.Error("an unmounted section keeps its controller states")
	}

	if sink.count(EventSectionMounted) != 1 || sink.count(EventSectionUnmounted) != 1 {
		t.Errorf("section events mounted=%d unmounted=%d", sink.count(EventSectionMounted), sink.count(EventSectionUnmounted))
	}
	if sink.count(EventRevealFired) != 1 || sink.count(EventRevealDone) != 1 {
		t.Errorf("reveal events fired=%d done=%d", sink.count(EventRevealFired), sink.count(EventRevealDone))
	}
	for _, e := range sink.events {
		if e.Section != "events" {
			t.Errorf("event %v has section %q", e.Type, e.Section)
		}
	}
}

func TestStageMotionPreferenceReadAtMount(t *testing.T) {
	s, _ := newTestStage()
	reduced := false
	s.SetMotionPreference(MotionFunc(func() bool { return reduced }))

	a := NewTarget("a", Rect{Y: 2000, Height: 100})
	b := NewTarget("b", Rect{Y: 2000, Height: 100})
	sec := s.Mount("s")
	sec.Reveal(RevealConfig{Target: a, Timeline: FadeUp(20)})
	reduced = true
	sec.Reveal(RevealConfig{Target: b, Timeline: FadeUp(20)})

	if a.Opacity != 0 {
		t.Error("a was mounted with full motion and should wait for its region")
	}
	if b.Opacity != 1 {
		t.Error("b was mounted with reduced motion and should show its end state")
	}
}

func TestStageStaticHost(t *testing.T) {
	s := NewStage(StaticHost{Width: 800, Height: 600})
	header := NewTarget("header", Rect{Height: 600})
	heading := NewTarget("heading", Rect{Y: 100, Height: 100})
	header.AddChild(heading)
	grid := NewTarget("grid", Rect{Y: 1000})
	stat := NewTarget("stat", Rect{Y: 3000})

	sec := s.Mount("all")
	sec.Pinned(PinnedConfig{Header: header, Heading: heading, EndAnchor: grid})
	c, _ := sec.Counter(CounterConfig{Target: stat, To: 120})
	s.Advance(frameDT)

	if heading.Opacity != 0.25 || c.Value() != 120 {
		t.Errorf("static host: heading %v counter %d", heading.Opacity, c.Value())
	}
	s.InjectScrollTo(100)
	s.Advance(frameDT)
}

func TestStageUnmountAll(t *testing.T) {
	s, _ := newTestStage()
	for _, name := range []string{"a", "b", "c"} {
		sec := s.Mount(name)
		sec.Counter(CounterConfig{Target: NewTarget(name, Rect{Y: 4000}), To: 3})
	}
	if s.Observer().Len() != 3 {
		t.Fatalf("subscribers = %d, want 3", s.Observer().Len())
	}
	s.UnmountAll()
	if s.Observer().Len() != 0 || len(s.Sections()) != 0 {
		t.Error("UnmountAll should release every subscription")
	}
}

func TestStageDebugLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, _ := newTestStage()
	s.SetLogger(zap.New(core))
	s.SetDebugMode(true)

	card := NewTarget("card", Rect{Y: 1000, Height: 200})
	s.Root().AddChild(card)
	s.Mount("m").Reveal(RevealConfig{Target: card, Timeline: FadeUp(20), Mode: Scrub})

	s.InjectScrollTo(700)
	s.Advance(frameDT)
	frames := logs.FilterMessage("frame").All()
	if len(frames) != 1 {
		t.Fatalf("frame logs = %d, want 1", len(frames))
	}
	if s.Stats().Dispatched != 1 || s.Stats().Writes != 2 {
		t.Errorf("stats = %+v", s.Stats())
	}

	s.Advance(frameDT)
	if got := len(logs.FilterMessage("frame").All()); got != 1 {
		t.Errorf("an idle frame should not log, got %d frame logs", got)
	}
	if logs.FilterMessage("section mounted").Len() != 1 {
		t.Error("expected a section mounted log")
	}
}

func TestStageMissingAnchorWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, _ := newTestStage()
	s.SetLogger(zap.New(core))

	if _, err := s.Mount("m").Reveal(RevealConfig{Timeline: FadeUp(20)}); err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1", logs.Len())
	}
}

func TestCountWrites(t *testing.T) {
	root := NewTarget("root", Rect{})
	a := NewTarget("a", Rect{})
	b := NewTarget("b", Rect{})
	root.AddChild(a)
	a.AddChild(b)
	a.Apply(Props{}.With(PropOpacity, 0))
	b.Apply(Props{}.With(PropOpacity, 0))
	b.Apply(Props{}.With(PropOpacity, 1))
	if got := countWrites(root); got != 3 {
		t.Errorf("countWrites = %d, want 3", got)
	}
	if countWrites(nil) != 0 {
		t.Error("countWrites(nil) should be 0")
	}
}

func TestDebugCheckTreeDepth(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, _ := newTestStage()
	s.SetLogger(zap.New(core))

	parent := s.Root()
	var leaf *Target
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		leaf = NewTarget("n", Rect{})
		parent.AddChild(leaf)
		parent = leaf
	}
	s.debugCheckTreeDepth(s.Root())
	if logs.Len() != 0 {
		t.Error("root depth should not warn")
	}
	s.debugCheckTreeDepth(leaf)
	if logs.Len() != 1 {
		t.Errorf("deep leaf warnings = %d, want 1", logs.Len())
	}
}
