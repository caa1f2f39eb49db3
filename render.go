package scrollfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image stretched to draw solid targets. Created on
// first Draw so headless use never touches the graphics driver.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// blurTaps are the offsets, in units of the blur radius, of the extra copies
// drawn to soften a blurred target.
var blurTaps = [4][2]float64{{-0.5, 0}, {0.5, 0}, {0, -0.5}, {0, 0.5}}

// Draw renders every visible target as a tinted rectangle at its current
// scroll-relative position, applying opacity, offsets, scale, rotation and an
// approximate blur. Opacity multiplies down the tree; a pinned target carries
// its children with it.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	var scrollY float64
	if s.host != nil {
		scrollY = s.host.ScrollY()
	}
	var op ebiten.DrawImageOptions
	s.drawTarget(screen, &op, s.root, scrollY, 0, 1)
	s.flushScreenshots(screen)
}

func (s *Stage) drawTarget(screen *ebiten.Image, op *ebiten.DrawImageOptions, t *Target, scrollY, pinDelta, parentAlpha float64) {
	if !t.Visible || t.disposed {
		return
	}
	alpha := parentAlpha * clamp01(t.Opacity)
	if alpha <= 0 {
		return
	}
	x, y, w, h := screenRect(t, scrollY, pinDelta)
	if t.Color.A > 0 && w > 0 && h > 0 {
		img := ensureWhitePixel()
		if t.Blur > 0 {
			drawRect(screen, img, op, t, x, y, w, h, alpha*0.5)
			for _, tap := range blurTaps {
				drawRect(screen, img, op, t, x+tap[0]*t.Blur, y+tap[1]*t.Blur, w, h, alpha*0.125)
			}
		} else {
			drawRect(screen, img, op, t, x, y, w, h, alpha)
		}
	}

	childDelta := pinDelta
	if t.pinned {
		childDelta += t.pinScreenY - (t.Bounds.Y - scrollY)
	}
	for _, c := range t.children {
		s.drawTarget(screen, op, c, scrollY, childDelta, alpha)
	}
}

// screenRect returns the unscaled on-screen rectangle of t, including pin
// displacement and animated offsets.
func screenRect(t *Target, scrollY, pinDelta float64) (x, y, w, h float64) {
	w, h = t.Bounds.Width, t.Bounds.Height
	x = t.Bounds.X
	y = t.ScreenY(scrollY) + t.OffsetY + t.TranslateY/100*h
	if !t.pinned {
		y += pinDelta
	}
	return x, y, w, h
}

func drawRect(screen, img *ebiten.Image, op *ebiten.DrawImageOptions, t *Target, x, y, w, h, alpha float64) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	if t.Scale != 1 {
		op.GeoM.Scale(t.Scale, t.Scale)
	}
	if t.Rotation != 0 {
		op.GeoM.Rotate(t.Rotation * math.Pi / 180)
	}
	op.GeoM.Translate(x+w/2, y+h/2)
	op.ColorScale.ScaleWithColor(t.Color.toRGBA())
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}
