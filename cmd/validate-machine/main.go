package main

import (
	"os"

	"github.com/This-Machine-AI/loving-grace/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.ExecuteValidate(version, commit, date); err != nil {
		os.Exit(1)
	}
}
