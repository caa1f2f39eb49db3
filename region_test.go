package scrollfx

import "testing"

func TestRegionProgressClampedAndMonotonic(t *testing.T) {
	r := &Region{}
	r.SetBounds(100, 300)

	prev := -1.0
	for y := 0.0; y <= 400; y += 7 {
		p := r.ProgressAt(y)
		if p < 0 || p > 1 {
			t.Fatalf("ProgressAt(%v) = %v outside [0, 1]", y, p)
		}
		if p < prev {
			t.Fatalf("ProgressAt(%v) = %v decreased from %v", y, p, prev)
		}
		prev = p
	}
	if r.ProgressAt(200) != 0.5 {
		t.Errorf("midpoint = %v, want 0.5", r.ProgressAt(200))
	}
}

func TestRegionDegenerate(t *testing.T) {
	r := &Region{}
	r.SetBounds(500, 500)
	if r.ProgressAt(499.9) != 0 {
		t.Error("below a degenerate region progress should be 0")
	}
	if r.ProgressAt(500) != 1 || r.ProgressAt(900) != 1 {
		t.Error("at or past a degenerate region progress should be 1")
	}
}

func TestRegionEndBeforeStartClamps(t *testing.T) {
	r := &Region{}
	r.SetBounds(800, 200)
	start, end := r.Bounds()
	if start != 800 || end != 800 {
		t.Errorf("Bounds = %v, %v; want 800, 800", start, end)
	}
}

func TestRegionResolve(t *testing.T) {
	vp := NewViewport(800, 600, 5000)
	obs := NewObserver(vp)
	card := NewTarget("card", Rect{Y: 1000, Height: 200})
	r := NewRegion(card, MustParseOffset("top bottom"), MustParseOffset("bottom top"), false)

	if !r.Resolve(obs) {
		t.Fatal("Resolve failed")
	}
	if s, e := r.Bounds(); s != 400 || e != 1200 {
		t.Errorf("Bounds = %v, %v; want 400, 1200", s, e)
	}

	// Resize re-resolves against the new height.
	vp.SetSize(800, 400)
	obs.Frame()
	r.Resolve(obs)
	if s, _ := r.Bounds(); s != 600 {
		t.Errorf("start after resize = %v, want 600", s)
	}
}

func TestRegionMissingAnchor(t *testing.T) {
	obs := NewObserver(NewViewport(800, 600, 5000))
	r := NewRegion(nil, OffsetTopTop, OffsetBottomTop, false)
	if r.Resolve(obs) || r.Valid() {
		t.Error("region without anchor should not resolve")
	}
	if r.ProgressAt(1e6) != 0 {
		t.Error("invalid region progress should be 0")
	}
}

func TestRegionPin(t *testing.T) {
	header := NewTarget("header", Rect{Y: 200, Height: 300})
	r := NewRegion(header, OffsetTopTop, MustParseOffset("top 50%"), true)
	r.SetBounds(200, 700)

	if engaged, _ := r.updatePin(r.ProgressAt(100)); engaged {
		t.Error("pin should not engage before the region")
	}
	if engaged, _ := r.updatePin(r.ProgressAt(300)); !engaged {
		t.Fatal("pin should engage inside the region")
	}
	if !header.Pinned() || header.ScreenY(300) != 0 {
		t.Errorf("header pinned=%v screenY=%v, want pinned at 0", header.Pinned(), header.ScreenY(300))
	}
	if _, released := r.updatePin(r.ProgressAt(800)); !released {
		t.Error("pin should release past the region")
	}
	if header.Pinned() {
		t.Error("header should be back in normal flow")
	}

	r.updatePin(0.5)
	r.ReleasePin()
	r.ReleasePin()
	if r.Pinned() || header.Pinned() {
		t.Error("ReleasePin should release")
	}
}
