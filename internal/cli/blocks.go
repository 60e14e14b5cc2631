package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/internal/ui/pretty"
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/config"
	"github.com/yaklabco/gomd2notion/pkg/document"
	"github.com/yaklabco/gomd2notion/pkg/fsutil"
	"github.com/yaklabco/gomd2notion/pkg/notion"
	"github.com/yaklabco/gomd2notion/pkg/publish"
	"github.com/yaklabco/gomd2notion/pkg/runner"
)

type blocksFlags struct {
	output         string
	outputDir      string
	exclude        []string
	jobs           int
	followSymlinks bool
}

func newBlocksCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks PATH...",
		Short: "Show the blocks Markdown files convert to",
		Long: `Convert Markdown files and print the resulting blocks in the service's
wire format, split and flattened exactly as publish would send them. No
network calls are made.

A single file is printed to stdout or written with --output. Several files
or directories are converted concurrently: --output-dir writes one file per
document, mirroring the source layout, and --format summary lists them.

Examples:
  gomd2notion blocks notes.md
  gomd2notion blocks notes.md --format yaml
  gomd2notion blocks notes.md --format summary
  gomd2notion blocks notes.md -o notes.blocks.json
  gomd2notion blocks docs/ --output-dir build/blocks
  gomd2notion blocks docs/ --format summary --exclude "drafts/**"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && flags.outputDir == "" && isFile(args[0]) {
				return runBlocks(cmd, args[0], cfg, flags)
			}
			return runBlocksBatch(cmd, args, cfg, flags)
		},
	}

	cmd.Flags().VarP(newFormatValue(&cfg.Format), "format", "f", "output format (default json)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "write one file per document under this directory")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob of paths to skip when walking directories")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "concurrent conversions (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().Bool("title-from-heading", false, "drop the heading used as the page title")
	cmd.Flags().Bool("strict-nesting", false, "fail on list items indented past any parent item")
	cmd.Flags().Bool("detect-language", true, "guess the language of unlabeled code fences")
	cmd.Flags().IntVar(&cfg.Convert.TextLimit, "text-limit", 0, "maximum characters per text block")

	return cmd
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err != nil || !info.IsDir()
}

// blocksSettings applies the conversion flags and resolves the configuration.
func blocksSettings(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	optionalBool(cmd.Flags(), "title-from-heading", &cliCfg.Convert.TitleFromHeading)
	optionalBool(cmd.Flags(), "strict-nesting", &cliCfg.Convert.StrictNesting)
	optionalBool(cmd.Flags(), "detect-language", &cliCfg.Convert.DetectLanguage)
	return loadSettings(cmd, cliCfg)
}

func runBlocks(cmd *cobra.Command, path string, cliCfg *config.Config, flags *blocksFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()

	cfg, err := blocksSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := document.Load(ctx, path)
	if err != nil {
		return err
	}
	title, body, err := doc.Title(ctx, config.Enabled(cfg.Convert.TitleFromHeading))
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg).Convert(string(body))
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}

	errStyles := pretty.NewStyles(colorEnabled(cmd, cmd.ErrOrStderr()))
	for _, w := range conv.Warnings {
		fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatWarning(path, w.Line, w.Message))
	}

	colored := flags.output == "" && colorEnabled(cmd, cmd.OutOrStdout())
	content, err := renderBlocks(cfg, conv, pretty.PublishStats{
		Source:   path,
		Title:    title,
		Warnings: len(conv.Warnings),
	}, colored)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	if changed {
		logger.Info("wrote blocks", logging.FieldOutput, flags.output, logging.FieldBlocks, len(conv.Blocks))
	} else {
		logger.Info("blocks unchanged", logging.FieldOutput, flags.output)
	}
	return nil
}

// runBlocksBatch converts every document under paths.
func runBlocksBatch(cmd *cobra.Command, paths []string, cliCfg *config.Config, flags *blocksFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()

	if flags.output != "" {
		return &usageError{err: errors.New("--output takes a single file; use --output-dir for several")}
	}

	cfg, err := blocksSettings(cmd, cliCfg)
	if err != nil {
		return err
	}
	if flags.outputDir == "" && cfg.Format != config.FormatSummary {
		return &usageError{err: errors.New("converting several documents needs --output-dir or --format summary")}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	res, err := runner.New(newConverter(cfg)).Run(ctx, runner.Options{
		Paths:            paths,
		WorkingDir:       workDir,
		ExcludeGlobs:     flags.exclude,
		FollowSymlinks:   flags.followSymlinks,
		Jobs:             flags.jobs,
		TitleFromHeading: config.Enabled(cfg.Convert.TitleFromHeading),
	})
	if err != nil {
		return err
	}
	logger.Debug("converted documents",
		logging.FieldFiles, res.Stats.FilesDiscovered,
		logging.FieldBlocks, res.Stats.Blocks,
		logging.FieldErrored, res.Stats.FilesErrored)

	out := cmd.OutOrStdout()
	outStyles := pretty.NewStyles(colorEnabled(cmd, out))
	errStyles := pretty.NewStyles(colorEnabled(cmd, cmd.ErrOrStderr()))

	var failures []error
	for _, file := range res.Files {
		rel := relativeTo(workDir, file.Path)
		if file.Error != nil {
			fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatError(file.Error))
			failures = append(failures, file.Error)
			continue
		}

		conv := file.Conversion
		for _, w := range conv.Warnings {
			fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatWarning(rel, w.Line, w.Message))
		}

		if flags.outputDir == "" {
			fmt.Fprint(out, outStyles.FormatFileLine(rel, file.Title, len(conv.Blocks), len(conv.Warnings)))
			continue
		}

		content, err := renderBlocks(cfg, conv, pretty.PublishStats{
			Source:   rel,
			Title:    file.Title,
			Warnings: len(conv.Warnings),
		}, false)
		if err != nil {
			return err
		}
		target := outputPath(flags.outputDir, rel, cfg.Format)
		changed, err := fsutil.WriteAtomicIfChanged(ctx, target, content, fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		logger.Debug("wrote blocks", logging.FieldOutput, target, logging.FieldChanged, changed)
	}

	fmt.Fprint(out, outStyles.FormatRunSummary(pretty.RunStats{
		Files:     res.Stats.FilesDiscovered,
		Converted: res.Stats.FilesConverted,
		Errored:   res.Stats.FilesErrored,
		Blocks:    res.Stats.Blocks,
		Warnings:  res.Stats.Warnings,
	}))

	return errors.Join(failures...)
}

// relativeTo shortens path for display and output layout. Paths outside
// dir keep only their base name.
func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return rel
}

// outputPath maps a source document to its file under dir.
func outputPath(dir, rel string, format config.OutputFormat) string {
	ext := ".json"
	switch format {
	case config.FormatYAML:
		ext = ".yaml"
	case config.FormatSummary:
		ext = ".txt"
	}
	return filepath.Join(dir, strings.TrimSuffix(rel, filepath.Ext(rel))+ext)
}

// renderBlocks formats a conversion in the configured output format.
func renderBlocks(cfg *config.Config, conv *publish.Conversion, stats pretty.PublishStats, colored bool) ([]byte, error) {
	wire := notion.EncodeBlocks(conv.Blocks)
	if wire == nil {
		wire = []notion.Block{}
	}

	switch cfg.Format {
	case config.FormatYAML:
		var buf bytes.Buffer
		if err := config.EncodeYAML(&buf, wire); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case config.FormatSummary:
		styles := pretty.NewStyles(colored)
		stats.Blocks = len(conv.Blocks)
		stats.Total = block.Count(conv.Blocks)
		stats.Batches = len(newPublisher(cfg, nil).Plan(conv.Tree))

		var buf bytes.Buffer
		buf.WriteString(pretty.NewTableFormatter(styles).FormatTable(pretty.CountBlocks(conv.Blocks)))
		buf.WriteString(styles.FormatSummary(stats))
		return buf.Bytes(), nil

	default:
		data, err := json.MarshalIndent(wire, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}
