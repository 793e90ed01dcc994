// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repair

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/lifecycle"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// --- list ---

type listParams struct {
	Status string `flag:"status,s" desc:"filter by status (pending, in-progress, completed, delivered, cancelled)"`
	JSON   bool   `flag:"json"     desc:"machine-readable output"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List repair orders",
		Description: `List repair orders, optionally filtered by status.

The table shows the repair number, customer, device, status, and
price. Use --json for the full records.`,
		Usage: "fixdesk repair list [flags]",
		Examples: []cli.Example{
			{
				Description: "List everything currently on the bench",
				Command:     "fixdesk repair list --status in-progress",
			},
			{
				Description: "Dump all repairs as JSON",
				Command:     "fixdesk repair list --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			var statusFilter schema.Status
			if params.Status != "" {
				parsed, err := schema.ParseStatus(params.Status)
				if err != nil {
					return err
				}
				statusFilter = parsed
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			repairs, err := shop.Client.Repairs(ctx)
			if err != nil {
				return err
			}

			if statusFilter != "" {
				filtered := repairs[:0]
				for _, repair := range repairs {
					if repair.Status == statusFilter {
						filtered = append(filtered, repair)
					}
				}
				repairs = filtered
			}

			if params.JSON {
				return cli.PrintJSON(os.Stdout, repairs)
			}

			if len(repairs) == 0 {
				logger.Info("no repairs found")
				return nil
			}
			return writeRepairTable(repairs)
		},
	}
}

// writeRepairTable renders repairs as an aligned table on stdout.
func writeRepairTable(repairs []schema.Repair) error {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tDEVICE\tSTATUS\tPRICE\tRECEIVED")
	for _, repair := range repairs {
		customer := ""
		if repair.Customer != nil {
			customer = repair.Customer.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			repair.RepairID,
			customer,
			repair.DeviceType,
			repair.Status,
			formatMoney(repair.Price),
			repair.CreatedAt.Format("2006-01-02"),
		)
	}
	return tw.Flush()
}

// --- show ---

type showParams struct {
	JSON bool `flag:"json" desc:"machine-readable output"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one repair order in full",
		Description: `Show a single repair order: customer, device, pricing, dates, the
fault description, and the legal next moves from its current status.`,
		Usage: "fixdesk repair show <number|id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show a repair by its number",
				Command:     "fixdesk repair show R-1042",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one repair number or ID is required")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			repair, err := resolveRepair(ctx, shop.Client, args[0])
			if err != nil {
				return err
			}

			if params.JSON {
				return cli.PrintJSON(os.Stdout, repair)
			}

			fmt.Printf("%s  %s\n\n", repair.RepairID, lifecycle.Label(repair.Status))
			if repair.Customer != nil {
				fmt.Printf("customer:   %s", repair.Customer.Name)
				if repair.Customer.Phone != "" {
					fmt.Printf("  %s", repair.Customer.Phone)
				}
				fmt.Println()
			}
			fmt.Printf("device:     %s", repair.DeviceType)
			if repair.Color != "" {
				fmt.Printf(" (%s)", repair.Color)
			}
			fmt.Println()
			fmt.Printf("price:      %s\n", formatMoney(repair.Price))
			if repair.WholesalePrice > 0 {
				fmt.Printf("parts cost: %s\n", formatMoney(repair.WholesalePrice))
				fmt.Printf("profit:     %s\n", formatMoney(repair.Profit))
			}
			fmt.Printf("received:   %s\n", repair.CreatedAt.Format("2006-01-02 15:04"))
			if repair.ExpectedCompletionDate != nil {
				fmt.Printf("promised:   %s\n", repair.ExpectedCompletionDate.Format("2006-01-02"))
			}
			if repair.CompletedAt != nil {
				fmt.Printf("completed:  %s\n", repair.CompletedAt.Format("2006-01-02 15:04"))
			}

			fmt.Printf("\n%s\n", repair.Fault)

			if targets := lifecycle.Next(repair.Status); len(targets) > 0 {
				fmt.Println()
				for _, target := range targets {
					fmt.Printf("next: %s (fixdesk repair status %s %s)\n",
						lifecycle.ActionLabel(target), repair.RepairID, target)
				}
			}
			return nil
		},
	}
}
