package scrollfx

// Region maps a raw scroll coordinate to a normalized progress in [0, 1] for
// one anchor, optionally pinning the anchor while progress advances.
type Region struct {
	Anchor *Target
	Start  Offset
	End    Offset
	// Pin holds the anchor fixed in the viewport while progress is strictly
	// between 0 and 1.
	Pin bool

	start, end float64
	valid      bool
	pinned     bool
}

// NewRegion creates a region over anchor between two offsets.
func NewRegion(anchor *Target, start, end Offset, pin bool) *Region {
	return &Region{Anchor: anchor, Start: start, End: end, Pin: pin}
}

// Resolve recomputes the absolute start and end coordinates from the
// observer's current geometry. An end that resolves before start is clamped
// to start. Returns false if either anchor is missing.
func (r *Region) Resolve(o *Observer) bool {
	start, ok := o.ResolveOffset(r.Start, r.Anchor)
	if !ok {
		r.valid = false
		return false
	}
	end, ok := o.ResolveOffset(r.End, r.Anchor)
	if !ok {
		r.valid = false
		return false
	}
	if end < start {
		end = start
	}
	r.start, r.end = start, end
	r.valid = true
	return true
}

// SetBounds sets the absolute coordinates directly, bypassing offset
// resolution.
func (r *Region) SetBounds(start, end float64) {
	if end < start {
		end = start
	}
	r.start, r.end = start, end
	r.valid = true
}

// Bounds returns the resolved start and end scroll coordinates.
func (r *Region) Bounds() (start, end float64) {
	return r.start, r.end
}

// Valid reports whether the region resolved against a live anchor.
func (r *Region) Valid() bool {
	return r.valid
}

// ProgressAt returns the clamped fraction of scroll between start and end.
// A degenerate region (start == end) is 0 below start and 1 at or above it.
func (r *Region) ProgressAt(scroll float64) float64 {
	if !r.valid {
		return 0
	}
	if r.end == r.start {
		if scroll >= r.start {
			return 1
		}
		return 0
	}
	return clamp01((scroll - r.start) / (r.end - r.start))
}

// updatePin engages or releases the pin for the given progress. The anchor
// is held at the screen position it had when the region started.
func (r *Region) updatePin(progress float64) (engaged, released bool) {
	if !r.Pin || !alive(r.Anchor) {
		return false, false
	}
	inside := progress > 0 && progress < 1
	switch {
	case inside && !r.pinned:
		r.pinned = true
		r.Anchor.pin(r.Anchor.Bounds.Y - r.start)
		return true, false
	case !inside && r.pinned:
		r.ReleasePin()
		return false, true
	}
	return false, false
}

// Pinned reports whether this region currently holds its anchor.
func (r *Region) Pinned() bool {
	return r.pinned
}

// ReleasePin returns the anchor to normal flow. Idempotent.
func (r *Region) ReleasePin() {
	if !r.pinned {
		return
	}
	r.pinned = false
	if r.Anchor != nil {
		r.Anchor.unpin()
	}
}
