package scrollfx

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTarget is returned when a manifest refers to a target name
	// that is not declared.
	ErrUnknownTarget = errors.New("scrollfx: unknown target")
	// ErrDuplicateTarget is returned when two targets share a name.
	ErrDuplicateTarget = errors.New("scrollfx: duplicate target name")
	// ErrUnknownPreset is returned for an unrecognized timeline preset.
	ErrUnknownPreset = errors.New("scrollfx: unknown timeline preset")
)

// Manifest is the declarative description of a page: its viewport, its
// target tree and the controllers each section mounts.
type Manifest struct {
	Name       string        `yaml:"name"`
	Viewport   ViewportSpec  `yaml:"viewport"`
	Background string        `yaml:"background"`
	Targets    []TargetSpec  `yaml:"targets"`
	Sections   []SectionSpec `yaml:"sections"`
}

// ViewportSpec sizes the viewport and the document.
type ViewportSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ContentHeight float64 `yaml:"contentHeight"`
}

// TargetSpec declares one target and its children.
type TargetSpec struct {
	Name     string       `yaml:"name"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	Color    string       `yaml:"color"`
	Children []TargetSpec `yaml:"children"`
}

// TimelineSpec declares a timeline by preset, from/to maps or keyframes, in
// that order of precedence.
type TimelineSpec struct {
	Preset       string             `yaml:"preset"`
	Distance     float64            `yaml:"distance"`
	BaseOpacity  float64            `yaml:"baseOpacity"`
	BaseRotation float64            `yaml:"baseRotation"`
	Blur         float64            `yaml:"blur"`
	From         map[string]float64 `yaml:"from"`
	To           map[string]float64 `yaml:"to"`
	Keyframes    []KeyframeSpec     `yaml:"keyframes"`
}

// KeyframeSpec is one keyframe of a TimelineSpec.
type KeyframeSpec struct {
	At    float64            `yaml:"at"`
	Props map[string]float64 `yaml:"props"`
}

// RevealSpec declares a Reveal.
type RevealSpec struct {
	Target    string  `yaml:"target"`
	Anchor    string  `yaml:"anchor"`
	Start     string  `yaml:"start"`
	End       string  `yaml:"end"`
	EndAnchor string  `yaml:"endAnchor"`
	Pin       bool    `yaml:"pin"`
	Mode      string  `yaml:"mode"`
	Duration  float32 `yaml:"duration"`
	Ease      string  `yaml:"ease"`

	TimelineSpec `yaml:",inline"`
}

// StaggerSpec declares a Stagger over either explicit targets or all
// children of a parent.
type StaggerSpec struct {
	Targets  []string `yaml:"targets"`
	Children string   `yaml:"children"`
	Anchor   string   `yaml:"anchor"`
	Start    string   `yaml:"start"`
	Interval float64  `yaml:"interval"`
	Duration float32  `yaml:"duration"`
	Ease     string   `yaml:"ease"`
	BatchMax int      `yaml:"batchMax"`

	TimelineSpec `yaml:",inline"`
}

// PinnedSpec declares a PinnedScrub with the stock heading and subtitle
// timelines.
type PinnedSpec struct {
	Header    string `yaml:"header"`
	Heading   string `yaml:"heading"`
	Subtitle  string `yaml:"subtitle"`
	EndAnchor string `yaml:"endAnchor"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
}

// CounterSpec declares a Counter.
type CounterSpec struct {
	Target    string  `yaml:"target"`
	Start     string  `yaml:"start"`
	From      float64 `yaml:"from"`
	To        float64 `yaml:"to"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
	Epsilon   float64 `yaml:"epsilon"`
}

// GalleryManifest declares a drag gallery. Zero config fields take defaults.
type GalleryManifest struct {
	Items         []GalleryItem `yaml:"items"`
	GalleryConfig `yaml:",inline"`
}

// SectionSpec declares one section and its controllers.
type SectionSpec struct {
	Name     string           `yaml:"name"`
	Reveals  []RevealSpec     `yaml:"reveals"`
	Staggers []StaggerSpec    `yaml:"staggers"`
	Pinned   []PinnedSpec     `yaml:"pinned"`
	Counters []CounterSpec    `yaml:"counters"`
	Gallery  *GalleryManifest `yaml:"gallery"`
}

// LoadManifest parses a YAML manifest.
func LoadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// LoadManifestFile reads and parses a YAML manifest file.
func LoadManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := LoadManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Page is a built manifest: a target tree and compiled controller configs
// ready to mount on a Stage.
type Page struct {
	Name       string
	Viewport   ViewportSpec
	Background Color

	roots    []*Target
	byName   map[string]*Target
	sections []pageSection
}

type pageSection struct {
	name     string
	reveals  []RevealConfig
	staggers []StaggerConfig
	pinned   []PinnedConfig
	counters []CounterConfig
	gallery  *GallerySpec
}

// Build validates the manifest and creates its targets. Unknown target
// names, malformed offsets, colors, eases and keyframes are errors.
func (m *Manifest) Build() (*Page, error) {
	p := &Page{
		Name:     m.Name,
		Viewport: m.Viewport,
		byName:   make(map[string]*Target),
	}
	if p.Viewport.Width <= 0 {
		p.Viewport.Width = 1280
	}
	if p.Viewport.Height <= 0 {
		p.Viewport.Height = 800
	}
	if m.Background != "" {
		c, err := ParseHexColor(m.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		p.Background = c
	}
	for i := range m.Targets {
		t, err := p.buildTarget(&m.Targets[i])
		if err != nil {
			return nil, err
		}
		p.roots = append(p.roots, t)
	}
	if p.Viewport.ContentHeight <= 0 {
		for _, t := range p.byName {
			p.Viewport.ContentHeight = max(p.Viewport.ContentHeight, t.Bounds.Bottom())
		}
	}
	for i := range m.Sections {
		ps, err := p.buildSection(&m.Sections[i])
		if err != nil {
			name := m.Sections[i].Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("section %s: %w", name, err)
		}
		p.sections = append(p.sections, ps)
	}
	return p, nil
}

func (p *Page) buildTarget(ts *TargetSpec) (*Target, error) {
	if ts.Name == "" {
		return nil, fmt.Errorf("target at y=%g has no name", ts.Y)
	}
	if _, dup := p.byName[ts.Name]; dup {
		return nil, fmt.Errorf("%w %q", ErrDuplicateTarget, ts.Name)
	}
	t := NewTarget(ts.Name, Rect{X: ts.X, Y: ts.Y, Width: ts.Width, Height: ts.Height})
	if ts.Color != "" {
		c, err := ParseHexColor(ts.Color)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", ts.Name, err)
		}
		t.Color = c
	}
	p.byName[ts.Name] = t
	for i := range ts.Children {
		c, err := p.buildTarget(&ts.Children[i])
		if err != nil {
			return nil, err
		}
		t.AddChild(c)
	}
	return t, nil
}

func (p *Page) lookup(name string) (*Target, error) {
	if name == "" {
		return nil, nil
	}
	t, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTarget, name)
	}
	return t, nil
}

func (p *Page) require(field, name string) (*Target, error) {
	if name == "" {
		return nil, fmt.Errorf("%s: %w: empty name", field, ErrUnknownTarget)
	}
	return p.lookup(name)
}

func checkOffsets(offsets ...string) error {
	for _, o := range offsets {
		if o == "" {
			continue
		}
		if _, err := ParseOffset(o); err != nil {
			return err
		}
	}
	return nil
}

func (p *Page) buildSection(ss *SectionSpec) (pageSection, error) {
	ps := pageSection{name: ss.Name}
	for i := range ss.Reveals {
		cfg, err := p.buildReveal(&ss.Reveals[i])
		if err != nil {
			return ps, fmt.Errorf("reveal %d: %w", i, err)
		}
		ps.reveals = append(ps.reveals, cfg)
	}
	for i := range ss.Staggers {
		cfg, err := p.buildStagger(&ss.Staggers[i])
		if err != nil {
			return ps, fmt.Errorf("stagger %d: %w", i, err)
		}
		ps.staggers = append(ps.staggers, cfg)
	}
	for i := range ss.Pinned {
		cfg, err := p.buildPinned(&ss.Pinned[i])
		if err != nil {
			return ps, fmt.Errorf("pinned %d: %w", i, err)
		}
		ps.pinned = append(ps.pinned, cfg)
	}
	for i := range ss.Counters {
		cs := &ss.Counters[i]
		t, err := p.require("target", cs.Target)
		if err != nil {
			return ps, fmt.Errorf("counter %d: %w", i, err)
		}
		if err := checkOffsets(cs.Start); err != nil {
			return ps, fmt.Errorf("counter %d: %w", i, err)
		}
		ps.counters = append(ps.counters, CounterConfig{
			Target:    t,
			Start:     cs.Start,
			From:      cs.From,
			To:        cs.To,
			Stiffness: cs.Stiffness,
			Damping:   cs.Damping,
			Mass:      cs.Mass,
			Epsilon:   cs.Epsilon,
		})
	}
	if g := ss.Gallery; g != nil {
		cfg := g.GalleryConfig.withDefaults()
		if err := cfg.Validate(); err != nil {
			return ps, err
		}
		if len(g.Items) == 0 {
			return ps, fmt.Errorf("%w: no items", ErrBadGallery)
		}
		ps.gallery = &GallerySpec{Items: g.Items, Config: cfg}
	}
	return ps, nil
}

func (p *Page) buildReveal(rs *RevealSpec) (RevealConfig, error) {
	var cfg RevealConfig
	t, err := p.require("target", rs.Target)
	if err != nil {
		return cfg, err
	}
	anchor, err := p.lookup(rs.Anchor)
	if err != nil {
		return cfg, err
	}
	endAnchor, err := p.lookup(rs.EndAnchor)
	if err != nil {
		return cfg, err
	}
	if err := checkOffsets(rs.Start, rs.End); err != nil {
		return cfg, err
	}
	mode, err := parseMode(rs.Mode)
	if err != nil {
		return cfg, err
	}
	fn, err := ParseEase(rs.Ease)
	if err != nil {
		return cfg, err
	}
	tl, err := rs.TimelineSpec.build()
	if err != nil {
		return cfg, err
	}
	return RevealConfig{
		Target:    t,
		Anchor:    anchor,
		Start:     rs.Start,
		End:       rs.End,
		EndAnchor: endAnchor,
		Pin:       rs.Pin,
		Timeline:  tl,
		Mode:      mode,
		Duration:  rs.Duration,
		Ease:      fn,
	}, nil
}

func (p *Page) buildStagger(ss *StaggerSpec) (StaggerConfig, error) {
	var cfg StaggerConfig
	var targets []*Target
	if ss.Children != "" {
		parent, err := p.lookup(ss.Children)
		if err != nil {
			return cfg, err
		}
		targets = append(targets, parent.Children()...)
	}
	for _, name := range ss.Targets {
		t, err := p.require("targets", name)
		if err != nil {
			return cfg, err
		}
		targets = append(targets, t)
	}
	anchor, err := p.lookup(ss.Anchor)
	if err != nil {
		return cfg, err
	}
	if err := checkOffsets(ss.Start); err != nil {
		return cfg, err
	}
	fn, err := ParseEase(ss.Ease)
	if err != nil {
		return cfg, err
	}
	tl, err := ss.TimelineSpec.build()
	if err != nil {
		return cfg, err
	}
	return StaggerConfig{
		Targets:  targets,
		Anchor:   anchor,
		Start:    ss.Start,
		Timeline: tl,
		Interval: ss.Interval,
		Duration: ss.Duration,
		Ease:     fn,
		BatchMax: ss.BatchMax,
	}, nil
}

func (p *Page) buildPinned(ps *PinnedSpec) (PinnedConfig, error) {
	var cfg PinnedConfig
	header, err := p.require("header", ps.Header)
	if err != nil {
		return cfg, err
	}
	endAnchor, err := p.require("endAnchor", ps.EndAnchor)
	if err != nil {
		return cfg, err
	}
	heading, err := p.lookup(ps.Heading)
	if err != nil {
		return cfg, err
	}
	subtitle, err := p.lookup(ps.Subtitle)
	if err != nil {
		return cfg, err
	}
	if err := checkOffsets(ps.Start, ps.End); err != nil {
		return cfg, err
	}
	return PinnedConfig{
		Header:    header,
		Heading:   heading,
		Subtitle:  subtitle,
		EndAnchor: endAnchor,
		Start:     ps.Start,
		End:       ps.End,
	}, nil
}

func parseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "once", "playonce":
		return PlayOnce, nil
	case "scrub":
		return Scrub, nil
	}
	return PlayOnce, fmt.Errorf("scrollfx: unknown reveal mode %q", s)
}

func (ts *TimelineSpec) build() (*Timeline, error) {
	switch strings.ToLower(ts.Preset) {
	case "fadeup":
		d := ts.Distance
		if d == 0 {
			d = 16
		}
		return FadeUp(d), nil
	case "scrollreveal":
		return ScrollRevealTimeline(ts.BaseOpacity, ts.BaseRotation, ts.Blur), nil
	case "heading":
		return HeadingScrub(), nil
	case "subtitle":
		return SubtitleScrub(), nil
	case "":
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, ts.Preset)
	}

	if ts.From != nil || ts.To != nil {
		from, err := PropsFromMap(ts.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		to, err := PropsFromMap(ts.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		return FromTo(from, to), nil
	}

	keys := make([]Keyframe, 0, len(ts.Keyframes))
	for i, k := range ts.Keyframes {
		props, err := PropsFromMap(k.Props)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		keys = append(keys, Keyframe{At: k.At, Props: props})
	}
	return NewTimeline(keys...)
}

// Target returns the target declared with name, or nil.
func (p *Page) Target(name string) *Target {
	return p.byName[name]
}

// Roots returns the top-level targets.
func (p *Page) Roots() []*Target {
	return p.roots
}

// Gallery returns the gallery declared by the named section, if any.
func (p *Page) Gallery(section string) (GallerySpec, bool) {
	for _, s := range p.sections {
		if s.name == section && s.gallery != nil {
			return *s.gallery, true
		}
	}
	return GallerySpec{}, false
}

// Mount attaches the page's targets to the stage root and mounts every
// section in declaration order. On error, sections mounted so far are
// unmounted again.
func (p *Page) Mount(stage *Stage) ([]*Section, error) {
	for _, t := range p.roots {
		stage.Root().AddChild(t)
		if stage.debug {
			p.walk(t, stage.debugCheckTreeDepth)
		}
	}
	if p.Background.A > 0 {
		stage.ClearColor = p.Background
	}

	var mounted []*Section
	fail := func(err error) ([]*Section, error) {
		for _, s := range mounted {
			s.Unmount()
		}
		return nil, err
	}
	for _, ps := range p.sections {
		sec := stage.Mount(ps.name)
		mounted = append(mounted, sec)
		for _, cfg := range ps.pinned {
			if _, err := sec.Pinned(cfg); err != nil {
				return fail(fmt.Errorf("section %s: %w", ps.name, err))
			}
		}
		for _, cfg := range ps.reveals {
			if _, err := sec.Reveal(cfg); err != nil {
				return fail(fmt.Errorf("section %s: %w", ps.name, err))
			}
		}
		for _, cfg := range ps.staggers {
			if _, err := sec.Stagger(cfg); err != nil {
				return fail(fmt.Errorf("section %s: %w", ps.name, err))
			}
		}
		for _, cfg := range ps.counters {
			if _, err := sec.Counter(cfg); err != nil {
				return fail(fmt.Errorf("section %s: %w", ps.name, err))
			}
		}
	}
	return mounted, nil
}

func (p *Page) walk(t *Target, fn func(*Target)) {
	fn(t)
	for _, c := range t.children {
		p.walk(c, fn)
	}
}
