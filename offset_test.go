package scrollfx

import (
	"errors"
	"testing"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want Offset
	}{
		{"top bottom", Offset{AnchorFrac: 0, ViewportFrac: 1}},
		{"top 80%", Offset{ViewportFrac: 0.8}},
		{"bottom top", Offset{AnchorFrac: 1}},
		{"center center", Offset{AnchorFrac: 0.5, ViewportFrac: 0.5}},
		{"top", Offset{}},
		{"top+=100 top", Offset{AnchorPixels: 100}},
		{"bottom-=20 50%", Offset{AnchorFrac: 1, AnchorPixels: -20, ViewportFrac: 0.5}},
		{"top 120px", Offset{ViewportPixels: 120}},
	}
	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if err != nil {
			t.Errorf("ParseOffset(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOffset(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseOffsetErrors(t *testing.T) {
	for _, in := range []string{"", "top left", "top bottom extra", "80 top", "top+=x bottom"} {
		if _, err := ParseOffset(in); !errors.Is(err, ErrBadOffset) {
			t.Errorf("ParseOffset(%q) err = %v, want ErrBadOffset", in, err)
		}
	}
}

func TestOffsetStringRoundTrip(t *testing.T) {
	for _, in := range []string{"top bottom", "top 80%", "bottom-=20 center", "top+=100 top"} {
		o := MustParseOffset(in)
		if o.String() != in {
			t.Errorf("String() = %q, want %q", o.String(), in)
		}
	}
}

func TestResolveOffset(t *testing.T) {
	vp := NewViewport(800, 600, 5000)
	obs := NewObserver(vp)
	card := NewTarget("card", Rect{Y: 1000, Height: 200})

	// Top of card reaches 80% of a 600px viewport.
	y, ok := obs.ResolveOffset(MustParseOffset("top 80%"), card)
	if !ok || !near(y, 520) {
		t.Errorf("top 80%% = %v, %v; want 520", y, ok)
	}
	y, _ = obs.ResolveOffset(MustParseOffset("bottom top"), card)
	if y != 1200 {
		t.Errorf("bottom top = %v, want 1200", y)
	}

	// An explicit anchor on the offset wins.
	other := NewTarget("other", Rect{Y: 3000})
	y, _ = obs.ResolveOffset(MustParseOffset("top 50%").At(other), card)
	if y != 2700 {
		t.Errorf("end anchor = %v, want 2700", y)
	}

	if _, ok := obs.ResolveOffset(OffsetTopTop, nil); ok {
		t.Error("nil anchor should not resolve")
	}
	card.Dispose()
	if _, ok := obs.ResolveOffset(OffsetTopTop, card); ok {
		t.Error("disposed anchor should not resolve")
	}
}
