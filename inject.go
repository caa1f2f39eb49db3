package scrollfx

import (
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Scroller is implemented by hosts whose scroll position and size can be
// driven programmatically. *Viewport and *EbitenHost implement it.
type Scroller interface {
	SetScrollY(y float64)
	ScrollBy(dy float64)
	ScrollTo(y float64, duration float32, easeFn ease.TweenFunc)
	SetSize(w, h float64)
}

type scrollInputKind uint8

const (
	inputScrollTo scrollInputKind = iota
	inputScrollBy
	inputSmoothScroll
	inputResize
)

// scrollInput is one queued synthetic scroll or resize event.
type scrollInput struct {
	kind     scrollInputKind
	y        float64
	w, h     float64
	duration float32
}

// InjectScrollTo queues a jump to scroll position y. The event is consumed on
// the next frame, before the observer polls the host.
func (s *Stage) InjectScrollTo(y float64) {
	s.injectQueue = append(s.injectQueue, scrollInput{kind: inputScrollTo, y: y})
}

// InjectScrollBy queues a relative scroll, like one wheel notch.
func (s *Stage) InjectScrollBy(dy float64) {
	s.injectQueue = append(s.injectQueue, scrollInput{kind: inputScrollBy, y: dy})
}

// InjectSmoothScroll queues an eased scroll to y over duration seconds.
func (s *Stage) InjectSmoothScroll(y float64, duration float32) {
	s.injectQueue = append(s.injectQueue, scrollInput{kind: inputSmoothScroll, y: y, duration: duration})
}

// InjectResize queues a viewport resize.
func (s *Stage) InjectResize(w, h float64) {
	s.injectQueue = append(s.injectQueue, scrollInput{kind: inputResize, w: w, h: h})
}

// InjectScrollSequence queues a linear scroll from one position to another
// over frames frames, one event per frame. Minimum frames is 1.
func (s *Stage) InjectScrollSequence(from, to float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		s.InjectScrollTo(lerp(from, to, float64(i)/float64(frames)))
	}
}

// processInjectedInput pops one event from the inject queue and applies it
// to the host. Returns true if an event was consumed.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	sc, ok := s.host.(Scroller)
	if !ok {
		s.log.Warn("host cannot be scrolled; dropping injected input")
		return true
	}
	switch evt.kind {
	case inputScrollTo:
		sc.SetScrollY(evt.y)
	case inputScrollBy:
		sc.ScrollBy(evt.y)
	case inputSmoothScroll:
		sc.ScrollTo(evt.y, evt.duration, nil)
	case inputResize:
		sc.SetSize(evt.w, evt.h)
		s.log.Debug("viewport resized", zap.Float64("width", evt.w), zap.Float64("height", evt.h))
	}
	return true
}
