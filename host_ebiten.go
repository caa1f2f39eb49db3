package scrollfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Default input steps for EbitenHost, in pixels.
const (
	DefaultWheelStep = 60
	DefaultKeyStep   = 40
)

// homeEndDuration is the smooth scroll time for Home and End.
const homeEndDuration = 0.6

// EbitenHost is a Viewport driven by the mouse wheel and keyboard of an
// Ebitengine window. Its size follows the game's layout.
type EbitenHost struct {
	*Viewport

	// ScrollSpeed multiplies wheel and key steps.
	ScrollSpeed float64
	WheelStep   float64
	KeyStep     float64
	// Reduced makes Home and End jump instead of easing.
	Reduced bool
}

// NewEbitenHost creates a host for a window of width × height over a document
// of contentHeight pixels.
func NewEbitenHost(width, height, contentHeight float64) *EbitenHost {
	return &EbitenHost{
		Viewport:    NewViewport(width, height, contentHeight),
		ScrollSpeed: 1,
		WheelStep:   DefaultWheelStep,
		KeyStep:     DefaultKeyStep,
	}
}

// ApplySettings copies the persisted scroll speed and motion preference.
func (h *EbitenHost) ApplySettings(m MotionSettings) {
	h.ScrollSpeed = m.ScrollSpeed
	if h.ScrollSpeed <= 0 {
		h.ScrollSpeed = 1
	}
	h.Reduced = m.ReducedMotion
}

// Update reads wheel and keyboard input and advances any smooth scroll.
func (h *EbitenHost) Update(dt float32) {
	speed := h.ScrollSpeed
	if speed <= 0 {
		speed = 1
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		h.ScrollBy(-wy * h.WheelStep * speed)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		h.ScrollBy(h.KeyStep * speed)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		h.ScrollBy(-h.KeyStep * speed)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		h.ScrollBy(h.Height * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		h.ScrollBy(-h.Height * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		h.scrollEdge(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		h.scrollEdge(h.ContentHeight)
	}
	h.Viewport.Update(dt)
}

func (h *EbitenHost) scrollEdge(y float64) {
	if h.Reduced {
		h.SetScrollY(y)
		return
	}
	h.ScrollTo(y, homeEndDuration, nil)
}

// Layout resizes the viewport to the window's logical size.
func (h *EbitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, ht := float64(outsideWidth), float64(outsideHeight)
	if w != h.Width || ht != h.Height {
		h.SetSize(w, ht)
	}
	return outsideWidth, outsideHeight
}
