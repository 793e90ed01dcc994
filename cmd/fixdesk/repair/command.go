// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repair

import (
	"context"
	"fmt"
	"strings"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// Command returns the "repair" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "repair",
		Summary: "Repair order commands",
		Description: `View and manage repair orders.

A repair moves through a fixed lifecycle: pending, in-progress,
completed, then delivered. Cancellation is possible from any active
status. Delivered and cancelled repairs are closed and cannot move
again.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			addCommand(),
			statusCommand(),
			deleteCommand(),
		},
	}
}

// resolveRepair finds a repair by record ID or by repair number
// (R-1042). Repair numbers require a list round trip; record IDs hit
// the single-record endpoint directly.
func resolveRepair(ctx context.Context, client *api.Client, reference string) (*schema.Repair, error) {
	if !strings.HasPrefix(reference, "R-") {
		return client.Repair(ctx, reference)
	}

	repairs, err := client.Repairs(ctx)
	if err != nil {
		return nil, err
	}
	for index := range repairs {
		if repairs[index].RepairID == reference {
			return &repairs[index], nil
		}
	}
	return nil, api.NotFound("no repair with number %s", reference)
}

// formatMoney renders a price column value.
func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
