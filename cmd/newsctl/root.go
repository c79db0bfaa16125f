package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/JayDad/energy-insight-ui/internal/app"
	"github.com/JayDad/energy-insight-ui/internal/config"
	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "newsctl",
	Short:        "Energy news maintenance CLI",
	Long:         "Runs the same refresh and cleanup jobs as the cron endpoints, without the HTTP server.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")
}

// buildApp loads configuration and connects the backends for one command run.
func buildApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stderr",
		Pretty: true,
	}); err != nil {
		return nil, err
	}
	return app.Build(ctx, cfg)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
