package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/godilite/bonus-report/internal/app"
	"github.com/godilite/bonus-report/internal/report"
	"github.com/godilite/bonus-report/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type reportFlags struct {
	period   string
	name     string
	site     string
	tenure   string
	format   string
	top      int
	progress bool
}

func newReportCommand() *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the bonus report of a month or of the quarter",
		Long: `Print the bonus report of one month, or of the whole quarter aggregated
per analyst when --period is TRIMESTRE (the default).

Rows are sorted by fulfilment percentage, highest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.period, "period", "p", service.QuarterPeriods[0], "TRIMESTRE or one month name")
	cmd.Flags().StringVar(&f.name, "name", "", "Only analysts whose name contains this text")
	cmd.Flags().StringVar(&f.site, "site", "", "Only analysts of this site")
	cmd.Flags().StringVar(&f.tenure, "tenure", "", "Only analysts in this tenure bucket")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format: "+strings.Join(report.Formats, ", "))
	cmd.Flags().IntVar(&f.top, "top", 0, "Only the first N rows (0 for all)")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "Show a progress bar while months load")

	return cmd
}

func runReport(cmd *cobra.Command, f reportFlags) error {
	if !slices.Contains(report.Formats, strings.ToLower(f.format)) {
		return fmt.Errorf("%w: %q", report.ErrUnknownFormat, f.format)
	}
	if f.top < 0 {
		return fmt.Errorf("--top must not be negative")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, logger, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := app.RunOptions{Format: f.format, Top: f.top}
	if f.progress {
		opts.Progress = cmd.ErrOrStderr()
	}
	q := service.Query{
		Period: f.period,
		Filter: service.Filter{Name: f.name, Site: f.site, Tenure: f.tenure},
	}
	if err := a.Report(ctx, cmd.OutOrStdout(), q, opts); err != nil {
		logger.Error("Report failed", zap.String("period", f.period), zap.Error(err))
		return err
	}
	return nil
}
