package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomd2notion/internal/configloader"
	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/config"
)

type initFlags struct {
	force      bool
	format     string
	output     string
	parentID   string
	parentType config.ParentType
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gomd2notion configuration file",
		Long: `Create a .gomd2notion.yml configuration file in the current directory
with commented defaults. The integration token is never written to the file;
keep it in NOTION_SECRET or a .env file.

Examples:
  gomd2notion init
  gomd2notion init --parent-id 0123456789abcdef0123456789abcdef
  gomd2notion init --parent-type database
  gomd2notion init --format json
  gomd2notion init --output configs/notion.yml`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file without asking")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .gomd2notion.yml or .gomd2notion.json)")
	cmd.Flags().StringVar(&flags.parentID, "parent-id", "", "prefill the parent page or database id")
	cmd.Flags().Var(newParentTypeValue(&flags.parentType), "parent-type", "prefill the placement mode")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gomd2notion.yml"
		if flags.format == "json" {
			outputPath = ".gomd2notion.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format:     flags.format,
		ParentID:   flags.parentID,
		ParentType: flags.parentType,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(ctx, absPath, content); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.parentID == "" {
		logger.Info("set notion.parent_id or NOTION_PARENT_PAGE_ID before publishing")
	}
	logger.Info("export NOTION_SECRET or add it to .env to authenticate")

	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
