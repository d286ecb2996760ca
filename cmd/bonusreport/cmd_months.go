package main

import (
	"fmt"

	"github.com/godilite/bonus-report/internal/service"
	"github.com/spf13/cobra"
)

func newMonthsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months that make up the quarter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range cfg.Months {
				fmt.Fprintln(out, m)
			}
			fmt.Fprintf(out, "%s aggregates all of the above\n", service.QuarterPeriods[0])
			return nil
		},
	}
}
