package scrollfx

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// hostUpdater is implemented by hosts that animate their own scroll position
// or read platform input each frame.
type hostUpdater interface {
	Update(dt float32)
}

// Stage is the top-level object that owns the target tree, the viewport
// observer, the mounted sections and scripted input.
type Stage struct {
	root     *Target
	host     Host
	observer *Observer

	sections []*Section
	motion   MotionPreference
	log      *zap.Logger
	sink     EventSink
	debug    bool

	script          *ScrollScript
	injectQueue     []scrollInput
	screenshotQueue []string
	frames          uint64
	stats           FrameStats

	// ClearColor fills the screen before targets are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes. Defaults to
	// DefaultScreenshotDir.
	ScreenshotDir string
}

// NewStage creates a stage over host with an empty, undrawn root target sized
// to the viewport. A nil host yields a stage whose controllers render end
// states.
func NewStage(host Host) *Stage {
	var w, h float64
	if host != nil {
		w, h = host.ViewportSize()
	}
	root := NewTarget("root", Rect{Width: w, Height: h})
	root.Color = Color{}
	return &Stage{
		root:     root,
		host:     host,
		observer: NewObserver(host),
		log:      zap.NewNop(),
	}
}

// Root returns the stage's root target.
func (s *Stage) Root() *Target { return s.root }

// Host returns the host the stage polls.
func (s *Stage) Host() Host { return s.host }

// Observer returns the stage's viewport observer.
func (s *Stage) Observer() *Observer { return s.observer }

// SetMotionPreference sets the preference read by controllers mounted from
// now on. Already-mounted controllers keep what they read.
func (s *Stage) SetMotionPreference(m MotionPreference) { s.motion = m }

// MotionPreference returns the current preference source.
func (s *Stage) MotionPreference() MotionPreference { return s.motion }

// SetLogger sets the logger used by the stage and controllers mounted from
// now on. A nil logger disables logging.
func (s *Stage) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// Logger returns the stage logger.
func (s *Stage) Logger() *zap.Logger { return s.log }

// SetEventSink sets the optional receiver of controller lifecycle events.
func (s *Stage) SetEventSink(sink EventSink) { s.sink = sink }

// SetDebugMode enables or disables per-frame stats. When enabled, stats are
// logged at debug level every frame that dispatched a tick.
func (s *Stage) SetDebugMode(enabled bool) { s.debug = enabled }

// Mount creates and registers a new section.
func (s *Stage) Mount(name string) *Section {
	sec := &Section{name: name, stage: s, mounted: true}
	s.sections = append(s.sections, sec)
	s.log.Debug("section mounted", zap.String("section", name))
	sec.env().emit(EventSectionMounted, nil, 0, 0)
	return sec
}

// Sections returns the mounted sections. The returned slice MUST NOT be
// mutated.
func (s *Stage) Sections() []*Section { return s.sections }

// Section returns the mounted section with the given name, or nil.
func (s *Stage) Section(name string) *Section {
	for _, sec := range s.sections {
		if sec.name == name && sec.mounted {
			return sec
		}
	}
	return nil
}

// UnmountAll unmounts every section.
func (s *Stage) UnmountAll() {
	for _, sec := range s.sections {
		sec.Unmount()
	}
	s.sections = s.sections[:0]
}

// Update advances the stage by one tick of the Ebitengine game loop.
func (s *Stage) Update() {
	s.Advance(float32(1.0 / float64(ebiten.TPS())))
}

// Advance runs one frame of dt seconds: scripted input, host update, observer
// dispatch, then controller updates.
func (s *Stage) Advance(dt float32) {
	s.frames++
	if s.script != nil {
		s.script.step(s)
	}
	s.processInjectedInput()
	if u, ok := s.host.(hostUpdater); ok {
		u.Update(dt)
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	dispatched := s.observer.Frame()
	if s.debug {
		s.stats.dispatchTime = time.Since(t0)
	}

	active := 0
	kept := s.sections[:0]
	for _, sec := range s.sections {
		if !sec.mounted {
			continue
		}
		active += sec.update(dt)
		kept = append(kept, sec)
	}
	for i := len(kept); i < len(s.sections); i++ {
		s.sections[i] = nil
	}
	s.sections = kept

	s.stats.Frame = s.frames
	s.stats.Dispatched = s.observer.dispatched
	s.stats.Subscribers = s.observer.Len()
	s.stats.ActiveControllers = active
	if s.debug && dispatched {
		s.stats.Writes = countWrites(s.root)
		s.debugLog(s.stats)
	}
}

// Frames returns the number of frames advanced so far.
func (s *Stage) Frames() uint64 { return s.frames }

// Stats returns the stats of the last frame.
func (s *Stage) Stats() FrameStats { return s.stats }

// Idle reports whether no controller has an animation in flight, no scripted
// input is queued and the host is not smooth scrolling.
func (s *Stage) Idle() bool {
	if len(s.injectQueue) > 0 || s.stats.ActiveControllers > 0 {
		return false
	}
	if s.script != nil && !s.script.Done() {
		return false
	}
	if sc, ok := s.host.(interface{ Scrolling() bool }); ok && sc.Scrolling() {
		return false
	}
	return true
}
