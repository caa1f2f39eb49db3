package scrollfx

// FadeUp returns the standard entrance: fully transparent and distance pixels
// low, easing to rest.
func FadeUp(distance float64) *Timeline {
	return FromTo(
		Props{}.With(PropOpacity, 0).With(PropOffsetY, distance),
		Props{}.With(PropOpacity, 1).With(PropOffsetY, 0),
	)
}

// ScrollRevealTimeline scrubs a block of text from a faint, tilted and blurred
// state to rest. A blur of 0 leaves blur untouched.
func ScrollRevealTimeline(baseOpacity, baseRotation, blur float64) *Timeline {
	from := Props{}.With(PropOpacity, baseOpacity).With(PropRotation, baseRotation)
	to := Props{}.With(PropOpacity, 1).With(PropRotation, 0)
	if blur > 0 {
		from = from.With(PropBlur, blur)
		to = to.With(PropBlur, 0)
	}
	return FromTo(from, to)
}

// HeadingScrub fades, shrinks and lifts a pinned heading as the page scrolls
// past it.
func HeadingScrub() *Timeline {
	return FromTo(
		Props{}.With(PropOpacity, 1).With(PropScale, 1).With(PropTranslateY, 0),
		Props{}.With(PropOpacity, 0.25).With(PropScale, 0.92).With(PropTranslateY, -12),
	)
}

// SubtitleScrub is the subtitle counterpart of HeadingScrub.
func SubtitleScrub() *Timeline {
	return FromTo(
		Props{}.With(PropOpacity, 1).With(PropTranslateY, 0),
		Props{}.With(PropOpacity, 0.2).With(PropTranslateY, -10),
	)
}
