package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomd2notion/internal/api"
	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/config"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

type serveFlags struct {
	logFormat string
}

func newServeCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		Long: `Serve markdown conversion and publishing over HTTP.

Endpoints:
  GET  /healthz     liveness check
  POST /v1/blocks   markdown body in, wire-format blocks out
  POST /v1/pages    JSON publish request with inline markdown

Page publishing is only enabled when NOTION_SECRET is set.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, cfg, flags)
		},
	}

	cmd.Flags().StringVar(&cfg.Server.Addr, "addr", "", "listen address (default \":8080\")")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", logging.FormatJSON, "request log format: text, json, logfmt")

	return cmd
}

func runServe(cmd *cobra.Command, cliCfg *config.Config, flags *serveFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	level := "info"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, flags.logFormat)

	var publisher *publish.Publisher
	if client, err := newClient(cfg); err == nil {
		publisher = newPublisher(cfg, client)
	} else {
		logger.Warn("page publishing disabled", logging.FieldError, err)
	}

	return api.NewServer(newConverter(cfg), publisher, logger).ListenAndServe(ctx, cfg.Server.Addr)
}
