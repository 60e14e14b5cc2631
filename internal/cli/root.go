// Package cli provides the Cobra command structure for gomd2notion.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomd2notion command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomd2notion",
		Short: "Publish Markdown documents as Notion pages",
		Long: `gomd2notion converts Markdown documents into Notion blocks and publishes
them as new pages.

Headings, paragraphs, nested lists, quotes, code, images, display math and
tables are converted; inline emphasis, code, links and math keep their
formatting. Long text is split to fit the service limits and blocks are
appended in ordered batches.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(newPublishCommand())
	rootCmd.AddCommand(newBlocksCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// colorEnabled resolves the --color flag for output written to w.
func colorEnabled(cmd *cobra.Command, w io.Writer) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = pretty.ColorAuto
	}
	return pretty.IsColorEnabled(mode, w)
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func isUsageError(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}

// usageArgs wraps a positional argument validator so its failures count as
// usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
