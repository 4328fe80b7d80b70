// Command frameunify is the corpus tooling CLI: it unifies the two release
// encodings, processes the frame ontology and serves the browse API.
package main

import (
	"fmt"
	"os"

	"github.com/veritext/frameunify/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
