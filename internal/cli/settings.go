package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomd2notion/internal/configloader"
	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/config"
	"github.com/yaklabco/gomd2notion/pkg/langdetect"
	"github.com/yaklabco/gomd2notion/pkg/notion"
	"github.com/yaklabco/gomd2notion/pkg/parser"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

// ErrMissingToken is returned when publishing without an integration token.
var ErrMissingToken = errors.New("integration token not set")

// ErrMissingParent is returned when publishing without a parent id.
var ErrMissingParent = errors.New("parent id not set")

// loadSettings resolves the configuration for a command, with cliCfg
// holding only the values set by flags.
func loadSettings(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	cfg := result.Config
	logger.Debug("configuration loaded",
		logging.FieldParentType, cfg.Notion.ParentType,
		logging.FieldDryRun, cfg.DryRun,
		"batch_size", cfg.Convert.BatchSize,
		"text_limit", cfg.Convert.TextLimit,
	)
	return cfg, nil
}

func limits(cfg *config.Config) publish.Limits {
	return publish.Limits{
		TextLimit: cfg.Convert.TextLimit,
		MaxSpans:  cfg.Convert.MaxSpans,
	}
}

// newConverter builds the markdown converter described by cfg.
func newConverter(cfg *config.Config) *publish.Converter {
	resolver := langdetect.Resolver{DetectContent: config.Enabled(cfg.Convert.DetectLanguage)}
	return &publish.Converter{
		Parser: parser.New(parser.Options{
			StrictNesting: config.Enabled(cfg.Convert.StrictNesting),
			Language:      resolver.Language,
		}),
		Limits: limits(cfg),
	}
}

// newClient builds an API client from cfg. The token must be present.
func newClient(cfg *config.Config) (*notion.Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: set %s or add it to .env", ErrMissingToken, configloader.EnvToken)
	}
	return notion.NewClient(cfg.Token,
		notion.WithBaseURL(cfg.Notion.APIURL),
		notion.WithVersion(cfg.Notion.APIVersion),
		notion.WithTimeout(cfg.Notion.Timeout),
	), nil
}

func newPublisher(cfg *config.Config, service publish.PageService) *publish.Publisher {
	return publish.NewPublisher(service,
		publish.WithLimits(limits(cfg)),
		publish.WithBatchSize(cfg.Convert.BatchSize),
	)
}
