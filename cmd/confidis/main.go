// Command confidis runs the trust-weighted answer resolver as a standalone
// CLI: an interactive REPL (run) or a scripted batch replay (replay).
package main

import (
	"fmt"
	"os"

	"github.com/waoai/confidis/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
