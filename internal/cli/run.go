package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/scrollfx"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	Script        string
	Frames        int
	MaxFrames     int
	TPS           int
	ReducedMotion bool
}

// TargetReport is the final state of one target.
type TargetReport struct {
	Name       string  `json:"name"`
	Opacity    float64 `json:"opacity"`
	OffsetY    float64 `json:"offsetY"`
	TranslateY float64 `json:"translateY"`
	Scale      float64 `json:"scale"`
	Blur       float64 `json:"blur"`
	Rotation   float64 `json:"rotation"`
	Pinned     bool    `json:"pinned"`
	Writes     uint64  `json:"writes"`
}

// SectionReport is the final state of one section.
type SectionReport struct {
	Name        string                     `json:"name"`
	Mounted     bool                       `json:"mounted"`
	Controllers []scrollfx.ControllerState `json:"controllers"`
}

// SimResult is the outcome of simulating one manifest.
type SimResult struct {
	Manifest string          `json:"manifest"`
	Frames   uint64          `json:"frames"`
	ScrollY  float64         `json:"scrollY"`
	Targets  []TargetReport  `json:"targets"`
	Sections []SectionReport `json:"sections"`
}

// SimResults prints as one block per manifest in text mode.
type SimResults []SimResult

func (rs SimResults) String() string {
	var b strings.Builder
	for i, r := range rs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %d frames, scrollY %.1f\n", r.Manifest, r.Frames, r.ScrollY)
		for _, t := range r.Targets {
			fmt.Fprintf(&b, "  %-20s opacity=%.3f y=%.2f yPercent=%.2f scale=%.3f blur=%.2f rotation=%.2f",
				t.Name, t.Opacity, t.OffsetY, t.TranslateY, t.Scale, t.Blur, t.Rotation)
			if t.Pinned {
				b.WriteString(" pinned")
			}
			b.WriteByte('\n')
		}
		for _, s := range r.Sections {
			state := "mounted"
			if !s.Mounted {
				state = "unmounted"
			}
			fmt.Fprintf(&b, "  [%s] %s\n", s.Name, state)
			for _, c := range s.Controllers {
				fmt.Fprintf(&b, "    %-14s %-20s fired=%t done=%t progress=%.3f value=%g\n",
					c.Kind, c.Target, c.Fired, c.Done, c.Progress, c.Value)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <manifest.yaml>...",
		Short: "Simulate one or more page manifests",
		Long: `Build each manifest into a headless stage, drive it with a scroll script
(or a fixed number of idle frames) and print every target's final state.

Manifests are simulated concurrently and reported in argument order.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Script, "script", "s", "", "scroll script (YAML)")
	cmd.Flags().IntVar(&opts.Frames, "frames", 120, "frames to run without a script, or extra settle frames after it")
	cmd.Flags().IntVar(&opts.MaxFrames, "max-frames", 20000, "hard frame limit per manifest")
	cmd.Flags().IntVar(&opts.TPS, "tps", 60, "simulated ticks per second")
	cmd.Flags().BoolVar(&opts.ReducedMotion, "reduced-motion", false, "simulate a reduced-motion preference")

	return cmd
}

func runSimulate(ctx context.Context, rootOpts *RootOptions, opts *RunOptions, paths []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)
	defer func() { _ = logger.Sync() }()

	if opts.TPS <= 0 {
		return NewExitError(ExitCommandError, "tps must be positive")
	}

	var script []byte
	if opts.Script != "" {
		data, err := os.ReadFile(opts.Script)
		if err != nil {
			_ = formatter.Error("E002", err.Error())
			return WrapExitError(ExitCommandError, "read script", err)
		}
		if _, err := scrollfx.LoadScrollScript(data); err != nil {
			_ = formatter.Error("E001", err.Error())
			return WrapExitError(ExitFailure, "invalid script", err)
		}
		script = data
	}

	results := make(SimResults, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			log := logger.With(zap.String("manifest", filepath.Base(path)))
			res, err := simulate(ctx, path, script, opts, log)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = formatter.Error("E001", err.Error())
		return WrapExitError(ExitFailure, "simulation failed", err)
	}
	return formatter.Success(results)
}

// simulate runs one manifest on its own stage. Stages share no state, so
// several may run on separate goroutines.
func simulate(ctx context.Context, path string, script []byte, opts *RunOptions, log *zap.Logger) (SimResult, error) {
	m, err := scrollfx.LoadManifestFile(path)
	if err != nil {
		return SimResult{}, err
	}
	page, err := m.Build()
	if err != nil {
		return SimResult{}, err
	}

	vp := scrollfx.NewViewport(page.Viewport.Width, page.Viewport.Height, page.Viewport.ContentHeight)
	stage := scrollfx.NewStage(vp)
	stage.SetLogger(log)
	stage.SetDebugMode(log.Core().Enabled(zap.DebugLevel))
	stage.SetMotionPreference(scrollfx.ReducedMotion(opts.ReducedMotion))

	sections, err := page.Mount(stage)
	if err != nil {
		return SimResult{}, err
	}

	var sc *scrollfx.ScrollScript
	if script != nil {
		if sc, err = scrollfx.LoadScrollScript(script); err != nil {
			return SimResult{}, err
		}
		stage.SetScrollScript(sc)
	}

	dt := float32(1.0 / float64(opts.TPS))
	settle := opts.Frames
	for int(stage.Frames()) < opts.MaxFrames {
		if stage.Frames()%64 == 0 {
			if err := ctx.Err(); err != nil {
				return SimResult{}, err
			}
		}
		stage.Advance(dt)
		if sc == nil {
			if int(stage.Frames()) >= opts.Frames {
				break
			}
			continue
		}
		if sc.Done() && stage.Idle() {
			if settle <= 0 {
				break
			}
			settle--
		}
	}
	log.Debug("simulation finished", zap.Uint64("frames", stage.Frames()))

	res := SimResult{
		Manifest: path,
		Frames:   stage.Frames(),
		ScrollY:  vp.ScrollY(),
	}
	for _, root := range page.Roots() {
		collectTargets(root, &res.Targets)
	}
	for _, sec := range sections {
		res.Sections = append(res.Sections, SectionReport{
			Name:        sec.Name(),
			Mounted:     sec.Mounted(),
			Controllers: sec.States(),
		})
	}
	return res, nil
}

func collectTargets(t *scrollfx.Target, out *[]TargetReport) {
	*out = append(*out, TargetReport{
		Name:       t.Name,
		Opacity:    t.Opacity,
		OffsetY:    t.OffsetY,
		TranslateY: t.TranslateY,
		Scale:      t.Scale,
		Blur:       t.Blur,
		Rotation:   t.Rotation,
		Pinned:     t.Pinned(),
		Writes:     t.Writes(),
	})
	for _, c := range t.Children() {
		collectTargets(c, out)
	}
}
