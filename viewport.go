package scrollfx

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Host is the platform's scroll and layout primitive that the Observer polls.
type Host interface {
	// ScrollY returns the current vertical scroll offset of the document.
	ScrollY() float64
	// ViewportSize returns the visible area's width and height.
	ViewportSize() (w, h float64)
	// Interactive reports whether scroll positions are meaningful at all. A
	// non-interactive host (a static render target) makes every controller
	// fall back to its final state.
	Interactive() bool
}

// StaticHost is a non-interactive host of a fixed size, e.g. an offscreen
// snapshot render.
type StaticHost struct {
	Width, Height float64
}

func (s StaticHost) ScrollY() float64             { return 0 }
func (s StaticHost) ViewportSize() (w, h float64) { return s.Width, s.Height }
func (s StaticHost) Interactive() bool            { return false }

// Viewport is an interactive host that owns the scroll position: the window
// into a document of ContentHeight pixels.
type Viewport struct {
	Width, Height float64
	// ContentHeight bounds scrolling to [0, ContentHeight-Height]. Zero
	// disables clamping.
	ContentHeight float64

	scrollY     float64
	scrollTween *gween.Tween
}

// NewViewport creates a viewport of the given size over a document of
// contentHeight pixels.
func NewViewport(width, height, contentHeight float64) *Viewport {
	return &Viewport{Width: width, Height: height, ContentHeight: contentHeight}
}

func (v *Viewport) ScrollY() float64             { return v.scrollY }
func (v *Viewport) ViewportSize() (w, h float64) { return v.Width, v.Height }
func (v *Viewport) Interactive() bool            { return true }

// SetScrollY jumps to y, cancelling any smooth scroll in progress.
func (v *Viewport) SetScrollY(y float64) {
	v.scrollTween = nil
	v.scrollY = v.clamp(y)
}

// ScrollBy moves the scroll position by dy pixels.
func (v *Viewport) ScrollBy(dy float64) {
	v.SetScrollY(v.scrollY + dy)
}

// SetSize changes the viewport dimensions and re-clamps the scroll position.
func (v *Viewport) SetSize(w, h float64) {
	v.Width, v.Height = w, h
	v.scrollY = v.clamp(v.scrollY)
}

// ScrollTo animates the scroll position to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clamp(y)
	if duration <= 0 {
		v.SetScrollY(y)
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	v.scrollTween = gween.New(float32(v.scrollY), float32(y), duration, easeFn)
}

// ScrollToTarget brings the top of t to the top of the viewport. When reduced
// is true the jump is immediate instead of animated.
func (v *Viewport) ScrollToTarget(t *Target, duration float32, easeFn ease.TweenFunc, reduced bool) {
	if !alive(t) {
		return
	}
	if reduced {
		v.SetScrollY(t.Bounds.Y)
		return
	}
	v.ScrollTo(t.Bounds.Y, duration, easeFn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Update advances a smooth scroll by dt seconds. Called from Stage.Update.
func (v *Viewport) Update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.scrollY = v.clamp(float64(val))
	if done {
		v.scrollTween = nil
	}
}

// clamp restricts y so the visible area stays within the document.
func (v *Viewport) clamp(y float64) float64 {
	if v.ContentHeight <= 0 {
		return math.Max(0, y)
	}
	maxY := v.ContentHeight - v.Height
	if maxY < 0 {
		return 0
	}
	return math.Max(0, math.Min(y, maxY))
}
