package scrollfx

import (
	"errors"
	"fmt"
)

// Gallery defaults.
const (
	DefaultGalleryBend         = 3
	DefaultGalleryTextColor    = "#111111"
	DefaultGalleryBorderRadius = 0.05
	DefaultGalleryScrollEase   = 0.02
	DefaultGalleryScrollSpeed  = 1
)

// ErrBadGallery is returned for an invalid gallery configuration.
var ErrBadGallery = errors.New("scrollfx: invalid gallery")

// GalleryItem is one image in a drag gallery.
type GalleryItem struct {
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

// GalleryConfig configures a drag gallery widget.
type GalleryConfig struct {
	// Bend is the curvature of the strip.
	Bend float64 `yaml:"bend"`
	// TextColor is a hex caption color.
	TextColor string `yaml:"textColor"`
	// BorderRadius is relative to the item size, in [0, 0.5].
	BorderRadius float64 `yaml:"borderRadius"`
	// ScrollEase is the per-frame smoothing factor, in (0, 1].
	ScrollEase  float64 `yaml:"scrollEase"`
	ScrollSpeed float64 `yaml:"scrollSpeed"`
}

// DefaultGalleryConfig returns the stock gallery look.
func DefaultGalleryConfig() GalleryConfig {
	return GalleryConfig{
		Bend:         DefaultGalleryBend,
		TextColor:    DefaultGalleryTextColor,
		BorderRadius: DefaultGalleryBorderRadius,
		ScrollEase:   DefaultGalleryScrollEase,
		ScrollSpeed:  DefaultGalleryScrollSpeed,
	}
}

// withDefaults fills zero fields from DefaultGalleryConfig.
func (c GalleryConfig) withDefaults() GalleryConfig {
	d := DefaultGalleryConfig()
	if c.Bend == 0 {
		c.Bend = d.Bend
	}
	if c.TextColor == "" {
		c.TextColor = d.TextColor
	}
	if c.BorderRadius == 0 {
		c.BorderRadius = d.BorderRadius
	}
	if c.ScrollEase == 0 {
		c.ScrollEase = d.ScrollEase
	}
	if c.ScrollSpeed == 0 {
		c.ScrollSpeed = d.ScrollSpeed
	}
	return c
}

// Validate checks the configuration ranges.
func (c GalleryConfig) Validate() error {
	if _, err := ParseHexColor(c.TextColor); err != nil {
		return fmt.Errorf("%w: text color: %w", ErrBadGallery, err)
	}
	if c.BorderRadius < 0 || c.BorderRadius > 0.5 {
		return fmt.Errorf("%w: border radius %g outside [0, 0.5]", ErrBadGallery, c.BorderRadius)
	}
	if c.ScrollEase <= 0 || c.ScrollEase > 1 {
		return fmt.Errorf("%w: scroll ease %g outside (0, 1]", ErrBadGallery, c.ScrollEase)
	}
	if c.ScrollSpeed <= 0 {
		return fmt.Errorf("%w: scroll speed must be positive", ErrBadGallery)
	}
	return nil
}

// Gallery is a drag-scrolled image strip rendered outside scrollfx. It gets
// its items once and never feeds back into the scroll orchestration.
type Gallery interface {
	SetItems(items []GalleryItem, cfg GalleryConfig)
}

// GallerySpec is a validated gallery declaration from a manifest.
type GallerySpec struct {
	Items  []GalleryItem
	Config GalleryConfig
}

// Bind hands the items and configuration to g.
func (s GallerySpec) Bind(g Gallery) {
	if g == nil {
		return
	}
	items := make([]GalleryItem, len(s.Items))
	copy(items, s.Items)
	g.SetItems(items, s.Config)
}
