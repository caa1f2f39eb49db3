package scrollfx

import "go.uber.org/zap"

// PinnedScrub defaults: the header pins when its top reaches the top of the
// viewport and releases when the end anchor's top reaches mid-viewport.
const (
	DefaultPinnedStart = "top top"
	DefaultPinnedEnd   = "top 50%"
)

// PinnedConfig declares a pinned header with two scrubbed children.
type PinnedConfig struct {
	// Header is pinned while the region is in progress.
	Header *Target
	// Heading and Subtitle are scrubbed from one shared progress value.
	// Either may be nil.
	Heading, Subtitle *Target
	// EndAnchor is the element the End offset resolves against.
	EndAnchor *Target

	// Start resolves against Header, End against EndAnchor. Defaults are
	// DefaultPinnedStart and DefaultPinnedEnd.
	Start, End string

	// Defaults are HeadingScrub and SubtitleScrub.
	HeadingTimeline  *Timeline
	SubtitleTimeline *Timeline
}

// PinnedScrub pins a header and scrubs its heading and subtitle on the same
// progress value every tick.
type PinnedScrub struct {
	env      env
	header   *Target
	heading  *Target
	subtitle *Target
	headTL   *Timeline
	subTL    *Timeline

	region *Region
	sub    Subscription

	progress float64
	mounted  bool
	inert    bool
}

// NewPinnedScrub creates a pinned scrub subscribed to obs.
func NewPinnedScrub(obs *Observer, motion MotionPreference, cfg PinnedConfig) (*PinnedScrub, error) {
	return newPinnedScrub(newEnv(obs, motion), cfg)
}

func newPinnedScrub(e env, cfg PinnedConfig) (*PinnedScrub, error) {
	region, err := buildRegion(cfg.Header, cfg.Start, cfg.End, cfg.EndAnchor, true, DefaultPinnedStart, DefaultPinnedEnd)
	if err != nil {
		return nil, err
	}
	ps := &PinnedScrub{
		env:      e,
		header:   cfg.Header,
		heading:  cfg.Heading,
		subtitle: cfg.Subtitle,
		headTL:   cfg.HeadingTimeline,
		subTL:    cfg.SubtitleTimeline,
		region:   region,
		mounted:  true,
	}
	if ps.headTL == nil {
		ps.headTL = HeadingScrub()
	}
	if ps.subTL == nil {
		ps.subTL = SubtitleScrub()
	}

	if !alive(ps.header) || !alive(cfg.EndAnchor) {
		ps.inert = true
		e.log.Warn("pinned scrub header or end anchor missing; nothing will be pinned", zap.String("section", e.section))
		e.emit(EventAnchorMissing, ps.header, 0, 0)
		return ps, nil
	}

	if e.static() {
		ps.progress = 1
		ps.write(1)
		return ps, nil
	}

	ps.Tick(e.obs.Current())
	ps.sub = e.obs.Subscribe(ps.Tick)
	return ps, nil
}

// Tick resolves the region once and drives both children from the result.
func (ps *PinnedScrub) Tick(t Tick) {
	if !ps.mounted || ps.inert {
		return
	}
	if !ps.region.Resolve(ps.env.obs) {
		ps.region.ReleasePin()
		return
	}
	p := ps.region.ProgressAt(t.ScrollY)
	ps.progress = p

	engaged, released := ps.region.updatePin(p)
	if engaged {
		ps.env.emit(EventPinEngaged, ps.header, p, 0)
	}
	if released {
		ps.env.emit(EventPinReleased, ps.header, p, 0)
	}
	ps.write(p)
}

func (ps *PinnedScrub) write(p float64) {
	if alive(ps.heading) {
		ps.heading.Apply(ps.headTL.Evaluate(p))
	}
	if alive(ps.subtitle) {
		ps.subtitle.Apply(ps.subTL.Evaluate(p))
	}
}

// Unmount unsubscribes and releases the pin. Nothing is written afterwards.
func (ps *PinnedScrub) Unmount() {
	if !ps.mounted {
		return
	}
	ps.mounted = false
	ps.sub.Unsubscribe()
	if ps.region.Pinned() {
		ps.region.ReleasePin()
		ps.env.emit(EventPinReleased, ps.header, ps.progress, 0)
	}
}

// Progress returns the shared progress written on the last tick.
func (ps *PinnedScrub) Progress() float64 { return ps.progress }

// Region returns the pinned region.
func (ps *PinnedScrub) Region() *Region { return ps.region }

// Pinned reports whether the header is currently pinned.
func (ps *PinnedScrub) Pinned() bool { return ps.region.Pinned() }

// Mounted reports whether Unmount has not been called.
func (ps *PinnedScrub) Mounted() bool { return ps.mounted }

func (ps *PinnedScrub) update(float32) {}
func (ps *PinnedScrub) unmount()       { ps.Unmount() }
func (ps *PinnedScrub) active() bool   { return false }

func (ps *PinnedScrub) state() ControllerState {
	return ControllerState{
		Kind:     "pinned",
		Target:   targetName(ps.header),
		Fired:    ps.region.Pinned(),
		Done:     !ps.mounted,
		Progress: ps.progress,
	}
}
