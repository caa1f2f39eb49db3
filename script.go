package scrollfx

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownAction is returned when a scroll script names an action the
// runner does not understand.
var ErrUnknownAction = errors.New("scrollfx: unknown script action")

// ScriptStep is a single action in a scroll script.
type ScriptStep struct {
	Action   string  `yaml:"action"`
	Y        float64 `yaml:"y,omitempty"`
	From     float64 `yaml:"from,omitempty"`
	To       float64 `yaml:"to,omitempty"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Duration float32 `yaml:"duration,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
	Section  string  `yaml:"section,omitempty"`
	Label    string  `yaml:"label,omitempty"`
}

// scrollScriptFile is the top-level YAML structure for a scroll script.
type scrollScriptFile struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ScrollScript sequences injected scroll, resize and unmount steps across
// frames for automated runs. Attach to a Stage via SetScrollScript.
//
// Actions:
//
//	scroll        jump to y
//	scrollBy      scroll by y pixels
//	smoothScroll  ease to y over duration seconds
//	sweep         scroll linearly from "from" to "to" over frames frames
//	resize        set the viewport to width × height
//	wait          idle for frames frames
//	unmount       unmount the named section
//	screenshot    capture the next drawn frame under label
type ScrollScript struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScrollScript parses a YAML scroll script.
func LoadScrollScript(data []byte) (*ScrollScript, error) {
	var f scrollScriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	return NewScrollScript(f.Steps...)
}

// NewScrollScript validates steps and returns a script ready to attach.
func NewScrollScript(steps ...ScriptStep) (*ScrollScript, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	for i, st := range steps {
		switch st.Action {
		case "scroll", "scrollBy", "smoothScroll", "sweep", "resize", "wait", "unmount", "screenshot":
		default:
			return nil, fmt.Errorf("parse scroll script: step %d: %w %q", i, ErrUnknownAction, st.Action)
		}
	}
	return &ScrollScript{steps: append([]ScriptStep(nil), steps...)}, nil
}

// SetScrollScript attaches a script to the stage. Its step method is called
// from Stage.Advance before injected input is processed each frame.
func (s *Stage) SetScrollScript(script *ScrollScript) {
	s.script = script
}

// Done reports whether all steps have been executed and their input drained.
func (r *ScrollScript) Done() bool {
	return r.done
}

// Len returns the number of steps.
func (r *ScrollScript) Len() int {
	return len(r.steps)
}

// step advances the script by one frame.
func (r *ScrollScript) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		s.InjectScrollTo(st.Y)
	case "scrollBy":
		s.InjectScrollBy(st.Y)
	case "smoothScroll":
		s.InjectSmoothScroll(st.Y, st.Duration)
	case "sweep":
		s.InjectScrollSequence(st.From, st.To, st.Frames)
	case "resize":
		s.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "unmount":
		if sec := s.Section(st.Section); sec != nil {
			sec.Unmount()
		}
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
