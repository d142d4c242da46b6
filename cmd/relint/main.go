// Package main is the entry point for the relint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/relint/internal/cli"
	"github.com/yaklabco/relint/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Issue signals carry their meaning in the exit code; don't log them.
		if !errors.Is(err, cli.ErrIssuesRemain) && !errors.Is(err, cli.ErrSessionsFailed) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return 0
}
