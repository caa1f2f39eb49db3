// Command scrollsim runs scrollfx page manifests headlessly and reports the
// resulting element states.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/scrollfx/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
