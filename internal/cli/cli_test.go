package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pageManifest   = filepath.Join("testdata", "page.yaml")
	brokenManifest = filepath.Join("testdata", "broken.yaml")
	pageScript     = filepath.Join("testdata", "script.yaml")
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "scrollsim", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "validate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{"script", "frames", "max-frames", "tps", "reduced-motion"} {
		assert.NotNil(t, run.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "s", run.Flags().Lookup("script").Shorthand)
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", "--format", "xml", pageManifest})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// runJSON executes the root command with --format json and decodes the
// simulation results.
func runJSON(t *testing.T, args ...string) SimResults {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"run", "--format", "json"}, args...))
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string     `json:"status"`
		Data   SimResults `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func findTarget(t *testing.T, r SimResult, name string) TargetReport {
	t.Helper()
	for _, tr := range r.Targets {
		if tr.Name == name {
			return tr
		}
	}
	t.Fatalf("target %q not in report", name)
	return TargetReport{}
}

func findSection(t *testing.T, r SimResult, name string) SectionReport {
	t.Helper()
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("section %q not in report", name)
	return SectionReport{}
}

func TestRunReducedMotion(t *testing.T) {
	results := runJSON(t, "--reduced-motion", "--frames", "3", pageManifest)
	require.Len(t, results, 1)
	r := results[0]
	assert.EqualValues(t, 3, r.Frames)

	for _, name := range []string{"card1", "card4", "card7", "statValue"} {
		tr := findTarget(t, r, name)
		assert.Equal(t, 1.0, tr.Opacity, name)
		assert.Equal(t, 0.0, tr.OffsetY, name)
	}
	heading := findTarget(t, r, "heading")
	assert.InDelta(t, 0.25, heading.Opacity, 1e-9)
	assert.InDelta(t, 0.92, heading.Scale, 1e-9)

	stats := findSection(t, r, "stats")
	var sawCounter bool
	for _, c := range stats.Controllers {
		if c.Kind == "counter" {
			sawCounter = true
			assert.Equal(t, 120.0, c.Value)
			assert.True(t, c.Done)
		}
	}
	assert.True(t, sawCounter)
}

func TestRunIdleFrames(t *testing.T) {
	results := runJSON(t, "--frames", "10", pageManifest)
	r := results[0]

	// Nothing has been scrolled: the grid has not fired and the header is
	// at progress 0.
	assert.Equal(t, 0.0, findTarget(t, r, "card1").Opacity)
	assert.Equal(t, 20.0, findTarget(t, r, "card1").OffsetY)
	assert.Equal(t, 1.0, findTarget(t, r, "heading").Opacity)
	assert.False(t, findTarget(t, r, "header").Pinned)
	assert.InDelta(t, 0.15, findTarget(t, r, "aboutText").Opacity, 1e-9)
}

func TestRunScript(t *testing.T) {
	results := runJSON(t, "--script", pageScript, pageManifest)
	r := results[0]
	assert.Equal(t, 0.0, r.ScrollY)

	for _, name := range []string{"card1", "card2", "card3", "card4", "card5", "card6", "card7"} {
		tr := findTarget(t, r, name)
		assert.InDelta(t, 1.0, tr.Opacity, 1e-9, name)
		assert.InDelta(t, 0.0, tr.OffsetY, 1e-9, name)
	}

	// The hero was unmounted at the bottom of the page and is left there.
	hero := findSection(t, r, "hero")
	assert.False(t, hero.Mounted)
	heading := findTarget(t, r, "heading")
	assert.InDelta(t, 0.25, heading.Opacity, 1e-9)
	assert.False(t, findTarget(t, r, "header").Pinned)

	// The about text scrubs back with the final scroll to the top.
	assert.InDelta(t, 0.15, findTarget(t, r, "aboutText").Opacity, 1e-9)

	stats := findSection(t, r, "stats")
	for _, c := range stats.Controllers {
		if c.Kind == "counter" {
			assert.Equal(t, 120.0, c.Value)
			assert.True(t, c.Fired)
			assert.True(t, c.Done)
		}
	}
}

func TestRunConcurrentOrder(t *testing.T) {
	results := runJSON(t, "--frames", "2", pageManifest, pageManifest, pageManifest)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, pageManifest, r.Manifest)
		assert.EqualValues(t, 2, r.Frames)
	}
}

func TestRunBrokenManifest(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", pageManifest, brokenManifest})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "missing")
}

func TestRunMissingScript(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--script", filepath.Join("testdata", "nope.yaml"), pageManifest})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunTextOutput(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--reduced-motion", "--frames", "1", pageManifest})

	require.NoError(t, cmd.Execute())
	text := out.String()
	assert.Contains(t, text, "card1")
	assert.Contains(t, text, "[stats] mounted")
	assert.Contains(t, text, "counter")
}

func TestValidate(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"validate", pageManifest})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "✓")
	assert.Contains(t, out.String(), "(15 targets)")
}

func TestValidateBroken(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"validate", "--format", "json", pageManifest, brokenManifest})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string            `json:"status"`
		Data   ValidationResults `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.True(t, resp.Data[0].Valid)
	assert.False(t, resp.Data[1].Valid)
	assert.Contains(t, resp.Data[1].Error, "unknown target")
}

func TestNewLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	quiet := newLogger(buf, false)
	quiet.Debug("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	loud := newLogger(buf, true)
	loud.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
