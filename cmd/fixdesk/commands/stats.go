// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
)

type statsParams struct {
	JSON bool `flag:"json" desc:"machine-readable output"`
}

// StatsCommand returns the "stats" command showing the dashboard
// aggregates.
func StatsCommand() *cli.Command {
	var params statsParams

	return &cli.Command{
		Name:    "stats",
		Summary: "Show shop statistics",
		Description: `Show the dashboard aggregates: total profit, repair counts per
status, and customers added this month. All numbers are computed
server-side.`,
		Usage: "fixdesk stats [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("stats", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			stats, err := shop.Client.DashboardStats(ctx)
			if err != nil {
				return err
			}

			if params.JSON {
				return cli.PrintJSON(os.Stdout, stats)
			}

			fmt.Printf("total profit:   %.2f\n", stats.TotalProfit)
			fmt.Printf("pending:        %d\n", stats.PendingRepairs)
			fmt.Printf("in progress:    %d\n", stats.InProgressRepairs)
			fmt.Printf("completed:      %d\n", stats.CompletedRepairs)
			fmt.Printf("new customers:  %d\n", stats.NewCustomers)
			return nil
		},
	}
}
