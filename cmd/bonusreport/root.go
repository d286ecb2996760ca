package main

import (
	"context"
	"fmt"

	"github.com/godilite/bonus-report/internal/app"
	"github.com/godilite/bonus-report/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonusreport",
		Short: "Compute analyst bonus payouts from monthly indicators",
		Long: `bonusreport computes the monthly and quarterly bonus of each analyst
from a workbook (or SQL table) of monthly indicator flags and a weight file.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newMonthsCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.LoadFromEnv()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app.App, *zap.Logger, error) {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	a, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", zap.Error(err))
		_ = logger.Sync()
		return nil, nil, err
	}
	return a, logger, nil
}
