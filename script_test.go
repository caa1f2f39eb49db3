package scrollfx

import (
	"errors"
	"testing"
)

func TestLoadScrollScript(t *testing.T) {
	data := []byte(`
steps:
  - action: sweep
    from: 0
    to: 300
    frames: 3
  - action: wait
    frames: 2
  - action: resize
    width: 1024
    height: 700
  - action: unmount
    section: hero
`)
	sc, err := LoadScrollScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Len() != 4 || sc.Done() {
		t.Errorf("Len = %d Done = %v", sc.Len(), sc.Done())
	}
}

func TestLoadScrollScriptErrors(t *testing.T) {
	if _, err := LoadScrollScript([]byte("steps: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := LoadScrollScript([]byte("steps: []")); err == nil {
		t.Error("expected error for an empty script")
	}
	_, err := LoadScrollScript([]byte("steps:\n  - action: fling\n"))
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}

func TestScrollScriptRun(t *testing.T) {
	s, vp := newTestStage()
	hero := s.Mount("hero")

	sc, err := NewScrollScript(
		ScriptStep{Action: "sweep", From: 0, To: 300, Frames: 3},
		ScriptStep{Action: "wait", Frames: 2},
		ScriptStep{Action: "scrollBy", Y: -100},
		ScriptStep{Action: "unmount", Section: "hero"},
		ScriptStep{Action: "resize", Width: 1024, Height: 700},
	)
	if err != nil {
		t.Fatal(err)
	}
	s.SetScrollScript(sc)

	var ys []float64
	for i := 0; i < 20 && !sc.Done(); i++ {
		s.Advance(frameDT)
		ys = append(ys, vp.ScrollY())
	}
	if !sc.Done() {
		t.Fatal("script did not finish")
	}
	if ys[0] != 100 || ys[1] != 200 || ys[2] != 300 {
		t.Errorf("sweep positions = %v", ys[:3])
	}
	if vp.ScrollY() != 200 {
		t.Errorf("final scroll = %v, want 200", vp.ScrollY())
	}
	if hero.Mounted() {
		t.Error("unmount step should unmount the section")
	}
	if vp.Width != 1024 || vp.Height != 700 {
		t.Errorf("viewport = %vx%v, want 1024x700", vp.Width, vp.Height)
	}
}

func TestScrollScriptSmoothScroll(t *testing.T) {
	s, vp := newTestStage()
	sc, _ := NewScrollScript(ScriptStep{Action: "smoothScroll", Y: 1000, Duration: 0.5})
	s.SetScrollScript(sc)

	s.Advance(frameDT)
	s.Advance(frameDT)
	if !vp.Scrolling() || s.Idle() {
		t.Fatal("smooth scroll should be in progress")
	}
	for i := 0; i < 60; i++ {
		s.Advance(frameDT)
	}
	if vp.ScrollY() != 1000 || !s.Idle() {
		t.Errorf("scroll %v idle %v", vp.ScrollY(), s.Idle())
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s, vp := newTestStage()
	s.InjectScrollTo(100)
	s.InjectScrollBy(50)
	s.InjectResize(640, 480)
	if len(s.injectQueue) != 3 {
		t.Fatalf("queue = %d, want 3", len(s.injectQueue))
	}

	s.processInjectedInput()
	if vp.ScrollY() != 100 {
		t.Errorf("after 1: %v", vp.ScrollY())
	}
	s.processInjectedInput()
	if vp.ScrollY() != 150 {
		t.Errorf("after 2: %v", vp.ScrollY())
	}
	s.processInjectedInput()
	if vp.Height != 480 {
		t.Errorf("after 3: height %v", vp.Height)
	}
	if s.processInjectedInput() {
		t.Error("empty queue should report nothing consumed")
	}
}

func TestInjectScrollSequence(t *testing.T) {
	s, _ := newTestStage()
	s.InjectScrollSequence(0, 90, 3)
	want := []float64{30, 60, 90}
	for i, in := range s.injectQueue {
		if in.kind != inputScrollTo || !near(in.y, want[i]) {
			t.Errorf("event %d = %+v", i, in)
		}
	}
	s.injectQueue = nil
	s.InjectScrollSequence(0, 10, 0)
	if len(s.injectQueue) != 1 {
		t.Errorf("minimum frames: queue = %d, want 1", len(s.injectQueue))
	}
}

func TestInjectCoalescesWithinFrame(t *testing.T) {
	s, _ := newTestStage()
	var calls int
	s.Observer().Subscribe(func(Tick) { calls++ })

	// One injected event per frame, one dispatch per frame.
	s.InjectScrollSequence(0, 500, 5)
	for i := 0; i < 5; i++ {
		s.Advance(frameDT)
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
}
