// Package main is the entry point for the xylux command.
package main

import (
	"fmt"
	"os"

	"github.com/maubry-ortega/Xylux-sub000/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	if err := cli.Execute(versionString); err != nil {
		os.Exit(1)
	}
}
