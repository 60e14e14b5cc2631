// Package main is the entry point for the gomd2notion CLI.
package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/gomd2notion/internal/cli"
	"github.com/yaklabco/gomd2notion/internal/logging"
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
	// Container CPU quotas bound the blocks worker pool and the server.
	// Set only fails on an invalid GOMAXPROCS, and the runtime default stands.
	_, _ = maxprocs.Set(maxprocs.Logger(logging.Default().Debugf))

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return cli.ExitCodeForError(err)
	}

	return cli.ExitSuccess
}
