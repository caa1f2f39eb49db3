package scrollfx

// Tick is the geometry snapshot delivered to subscribers once per frame.
type Tick struct {
	ScrollY       float64
	Width, Height float64
	// Resized is true when the viewport size changed since the previous tick;
	// cached region coordinates must be recomputed.
	Resized bool
	// Frame is the observer frame number that produced this tick.
	Frame uint64
}

type subscriber struct {
	id uint32
	fn func(Tick)
}

// Subscription is the handle returned by Observer.Subscribe.
type Subscription struct {
	id  uint32
	obs *Observer
}

// Unsubscribe removes the callback. It is idempotent and takes effect
// immediately, including during an in-flight dispatch.
func (s Subscription) Unsubscribe() {
	if s.obs == nil {
		return
	}
	s.obs.Unsubscribe(s)
}

// Active reports whether the subscription is still registered.
func (s Subscription) Active() bool {
	if s.obs == nil || s.id == 0 {
		return false
	}
	return s.obs.indexOf(s.id) >= 0
}

// Observer is the single source of truth for the current scroll coordinate
// and viewport size. It polls its Host once per frame and dispatches at most
// one Tick per frame to every subscriber, no matter how many scroll or resize
// notifications arrived during that frame.
type Observer struct {
	host      Host
	available bool

	subs   []subscriber
	nextID uint32

	dispatching bool
	tombstones  int

	pending bool
	current Tick
	frame   uint64

	dispatched int // subscriber callbacks invoked in the last frame
}

// NewObserver creates an observer over host. A nil or non-interactive host
// produces an unavailable observer whose subscriptions never fire.
func NewObserver(host Host) *Observer {
	o := &Observer{host: host}
	if host == nil || !host.Interactive() {
		if host != nil {
			o.current.Width, o.current.Height = host.ViewportSize()
		}
		return o
	}
	o.available = true
	o.current.ScrollY = host.ScrollY()
	o.current.Width, o.current.Height = host.ViewportSize()
	return o
}

// Available reports whether the platform can report scroll positions.
func (o *Observer) Available() bool {
	return o.available
}

// Current returns the latest geometry.
func (o *Observer) Current() Tick {
	return o.current
}

// Len returns the number of registered subscriptions.
func (o *Observer) Len() int {
	return len(o.subs) - o.tombstones
}

// Subscribe registers fn to be called on every dispatched tick. On an
// unavailable observer the returned handle is inert and fn never runs.
// Subscribing during a dispatch is allowed; fn first runs on the next frame.
func (o *Observer) Subscribe(fn func(Tick)) Subscription {
	if !o.available || fn == nil {
		return Subscription{}
	}
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber{id: id, fn: fn})
	return Subscription{id: id, obs: o}
}

// Unsubscribe removes the subscription. Idempotent. When called from inside a
// dispatch the entry is tombstoned so the iteration in progress skips it, and
// it is compacted once the dispatch completes.
func (o *Observer) Unsubscribe(s Subscription) {
	if s.obs != o || s.id == 0 {
		return
	}
	i := o.indexOf(s.id)
	if i < 0 {
		return
	}
	if o.dispatching {
		o.subs[i].fn = nil
		o.tombstones++
		return
	}
	copy(o.subs[i:], o.subs[i+1:])
	o.subs[len(o.subs)-1] = subscriber{}
	o.subs = o.subs[:len(o.subs)-1]
}

func (o *Observer) indexOf(id uint32) int {
	for i := range o.subs {
		if o.subs[i].id == id && o.subs[i].fn != nil {
			return i
		}
	}
	return -1
}

// Notify records that a scroll or resize event happened. Any number of
// notifications within a frame coalesce into one dispatch.
func (o *Observer) Notify() {
	o.pending = true
}

// Frame polls the host and, if anything changed or Notify was called since
// the previous frame, dispatches exactly one tick. Returns whether a dispatch
// happened.
func (o *Observer) Frame() bool {
	o.dispatched = 0
	if !o.available {
		return false
	}
	o.frame++

	scrollY := o.host.ScrollY()
	w, h := o.host.ViewportSize()
	resized := w != o.current.Width || h != o.current.Height
	if !o.pending && !resized && scrollY == o.current.ScrollY {
		return false
	}
	o.pending = false
	o.current = Tick{ScrollY: scrollY, Width: w, Height: h, Resized: resized, Frame: o.frame}
	o.dispatch(o.current)
	return true
}

func (o *Observer) dispatch(t Tick) {
	o.dispatching = true
	// Subscribers added during the dispatch sit past n and wait for the
	// next frame.
	n := len(o.subs)
	for i := 0; i < n; i++ {
		fn := o.subs[i].fn
		if fn == nil {
			continue
		}
		fn(t)
		o.dispatched++
	}
	o.dispatching = false
	if o.tombstones > 0 {
		o.compact()
	}
}

// compact drops tombstoned entries in place.
func (o *Observer) compact() {
	kept := o.subs[:0]
	for _, s := range o.subs {
		if s.fn != nil {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(o.subs); i++ {
		o.subs[i] = subscriber{}
	}
	o.subs = kept
	o.tombstones = 0
}

// ResolveOffset converts an offset spec into an absolute scroll coordinate
// using the current layout geometry. off.Anchor, when set, takes precedence
// over anchor. Returns false when no live anchor is available. The result is
// only valid until the next resize.
func (o *Observer) ResolveOffset(off Offset, anchor *Target) (float64, bool) {
	if off.Anchor != nil {
		anchor = off.Anchor
	}
	if !alive(anchor) {
		return 0, false
	}
	return off.resolve(anchor.Bounds, o.current.Height), true
}
