package scrollfx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadOffset is returned by ParseOffset for malformed offset strings.
var ErrBadOffset = errors.New("scrollfx: malformed offset")

// Offset declares a scroll relationship between a point on an anchor and a
// point in the viewport, e.g. "top of anchor reaches 80% of viewport height".
// It resolves to the scroll coordinate at which the two points coincide.
type Offset struct {
	// Anchor overrides the region's anchor for this offset (the "end
	// trigger" case). Nil uses the region's anchor.
	Anchor *Target
	// AnchorFrac selects the point on the anchor: 0 top, 0.5 center, 1 bottom.
	AnchorFrac float64
	// AnchorPixels is added to the anchor point.
	AnchorPixels float64
	// ViewportFrac selects the point in the viewport: 0 top, 1 bottom.
	ViewportFrac float64
	// ViewportPixels is added to the viewport point.
	ViewportPixels float64
}

// Common offsets.
var (
	OffsetTopTop       = Offset{}
	OffsetBottomTop    = Offset{AnchorFrac: 1}
	OffsetBottomBottom = Offset{AnchorFrac: 1, ViewportFrac: 1}
)

// At returns a copy of o resolved against a different anchor.
func (o Offset) At(anchor *Target) Offset {
	o.Anchor = anchor
	return o
}

// resolve computes the scroll coordinate for this offset against the given
// anchor geometry and viewport height.
func (o Offset) resolve(anchor Rect, viewportH float64) float64 {
	point := anchor.Y + o.AnchorFrac*anchor.Height + o.AnchorPixels
	return point - (o.ViewportFrac*viewportH + o.ViewportPixels)
}

// String formats the offset in ParseOffset syntax.
func (o Offset) String() string {
	return formatEdge(o.AnchorFrac, o.AnchorPixels) + " " + formatEdge(o.ViewportFrac, o.ViewportPixels)
}

func formatEdge(frac, px float64) string {
	var s string
	switch frac {
	case 0:
		s = "top"
	case 0.5:
		s = "center"
	case 1:
		s = "bottom"
	default:
		s = strconv.FormatFloat(frac*100, 'g', -1, 64) + "%"
	}
	switch {
	case px > 0:
		s += "+=" + strconv.FormatFloat(px, 'g', -1, 64)
	case px < 0:
		s += "-=" + strconv.FormatFloat(-px, 'g', -1, 64)
	}
	return s
}

// ParseOffset parses "<anchor-edge> <viewport-edge>". Each edge is one of
// top, center, bottom, a percentage ("80%") or a pixel distance ("120px"),
// optionally followed by a relative pixel adjustment ("top+=100").
// A single edge applies to both sides, so "top" means "top top".
func ParseOffset(s string) (Offset, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 {
		fields = append(fields, fields[0])
	}
	if len(fields) != 2 {
		return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
	}
	af, ap, err := parseEdge(fields[0])
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %q: %v", ErrBadOffset, s, err)
	}
	vf, vp, err := parseEdge(fields[1])
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %q: %v", ErrBadOffset, s, err)
	}
	return Offset{AnchorFrac: af, AnchorPixels: ap, ViewportFrac: vf, ViewportPixels: vp}, nil
}

// MustParseOffset is like ParseOffset but panics on error.
func MustParseOffset(s string) Offset {
	o, err := ParseOffset(s)
	if err != nil {
		panic(err)
	}
	return o
}

func parseEdge(s string) (frac, px float64, err error) {
	base := s
	if i := strings.Index(s, "+="); i > 0 {
		base = s[:i]
		px, err = strconv.ParseFloat(s[i+2:], 64)
	} else if i := strings.Index(s, "-="); i > 0 {
		base = s[:i]
		px, err = strconv.ParseFloat(s[i+2:], 64)
		px = -px
	}
	if err != nil {
		return 0, 0, err
	}

	switch {
	case base == "top":
		return 0, px, nil
	case base == "center":
		return 0.5, px, nil
	case base == "bottom":
		return 1, px, nil
	case strings.HasSuffix(base, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(base, "%"), 64)
		if err != nil {
			return 0, 0, err
		}
		return v / 100, px, nil
	case strings.HasSuffix(base, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(base, "px"), 64)
		if err != nil {
			return 0, 0, err
		}
		return 0, px + v, nil
	}
	return 0, 0, fmt.Errorf("unknown edge %q", base)
}
