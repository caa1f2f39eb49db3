package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollfx"
)

// ValidationResult holds the outcome for one manifest.
type ValidationResult struct {
	Manifest string `json:"manifest"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	Targets  int    `json:"targets,omitempty"`
}

// ValidationResults prints one line per manifest in text mode.
type ValidationResults []ValidationResult

func (rs ValidationResults) String() string {
	var b strings.Builder
	for _, r := range rs {
		if r.Valid {
			fmt.Fprintf(&b, "✓ %s (%d targets)\n", r.Manifest, r.Targets)
		} else {
			fmt.Fprintf(&b, "✗ %s: %s\n", r.Manifest, r.Error)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest.yaml>...",
		Short: "Check manifests without simulating them",
		Long: `Parse and build each manifest: target names, offsets, eases, colors,
keyframes and gallery settings are checked, but nothing is mounted.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	results := make(ValidationResults, 0, len(paths))
	failed := 0
	for _, path := range paths {
		r := ValidationResult{Manifest: path}
		page, err := buildManifest(path)
		if err != nil {
			r.Error = err.Error()
			failed++
		} else {
			r.Valid = true
			r.Targets = countTargets(page)
		}
		results = append(results, r)
	}

	if err := formatter.Success(results); err != nil {
		return err
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d manifests invalid", failed, len(paths)))
	}
	return nil
}

func buildManifest(path string) (*scrollfx.Page, error) {
	m, err := scrollfx.LoadManifestFile(path)
	if err != nil {
		return nil, err
	}
	return m.Build()
}

func countTargets(p *scrollfx.Page) int {
	n := 0
	var walk func(t *scrollfx.Target)
	walk = func(t *scrollfx.Target) {
		n++
		for _, c := range t.Children() {
			walk(c)
		}
	}
	for _, r := range p.Roots() {
		walk(r)
	}
	return n
}
