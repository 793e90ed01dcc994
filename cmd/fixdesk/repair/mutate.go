// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repair

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/lifecycle"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// --- add ---

type addParams struct {
	Customer  string  `flag:"customer,c" desc:"customer record ID, phone number, or exact name"`
	Device    string  `flag:"device,d"   desc:"device type (mobile, laptop, tablet, desktop, other)" default:"mobile"`
	Color     string  `flag:"color"      desc:"device color"`
	Fault     string  `flag:"fault,f"    desc:"reported fault description"`
	Price     float64 `flag:"price,p"    desc:"quoted price"`
	PartsCost float64 `flag:"parts-cost" desc:"wholesale parts cost"`
	Due       string  `flag:"due"        desc:"promised completion date (YYYY-MM-DD)"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Receive a device for repair",
		Description: `Create a new repair order. The repair starts in pending status and
receives the next repair number from the backend.

The customer must already exist; use "fixdesk customer add" first for
walk-ins. --customer accepts the record ID, the phone number, or the
exact name.`,
		Usage: "fixdesk repair add --customer CUSTOMER --fault TEXT [flags]",
		Examples: []cli.Example{
			{
				Description: "Receive a phone with a broken screen",
				Command:     `fixdesk repair add --customer 0100111222 --device mobile --fault "screen cracked, touch dead" --price 120`,
			},
			{
				Description: "Receive a laptop with a promised date",
				Command:     `fixdesk repair add -c "Sara Hassan" -d laptop -f "no power" -p 300 --due 2026-09-15`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("add", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if params.Customer == "" {
				return fmt.Errorf("--customer is required")
			}
			if strings.TrimSpace(params.Fault) == "" {
				return fmt.Errorf("--fault is required")
			}
			if params.Price < 0 || params.PartsCost < 0 {
				return fmt.Errorf("price and parts cost must be non-negative")
			}

			deviceType, err := schema.ParseDeviceType(params.Device)
			if err != nil {
				return err
			}

			input := schema.RepairInput{
				DeviceType:     deviceType,
				Color:          params.Color,
				Fault:          strings.TrimSpace(params.Fault),
				Price:          params.Price,
				WholesalePrice: params.PartsCost,
			}

			if params.Due != "" {
				due, err := time.Parse("2006-01-02", params.Due)
				if err != nil {
					return fmt.Errorf("--due must be YYYY-MM-DD: %w", err)
				}
				input.ExpectedCompletionDate = &due
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			customer, err := resolveCustomer(ctx, shop, params.Customer)
			if err != nil {
				return err
			}
			input.Customer = customer.ID

			created, err := shop.Client.CreateRepair(ctx, input)
			if err != nil {
				return err
			}

			logger.Info("repair received",
				"repair", created.RepairID,
				"customer", customer.Name,
				"device", string(created.DeviceType))
			fmt.Printf("%s received for %s\n", created.RepairID, customer.Name)
			return nil
		},
	}
}

// resolveCustomer finds a customer by record ID, phone, or exact name.
func resolveCustomer(ctx context.Context, shop *cli.Shop, reference string) (*schema.Customer, error) {
	customers, err := shop.Client.Customers(ctx)
	if err != nil {
		return nil, err
	}
	for index := range customers {
		customer := &customers[index]
		if customer.ID == reference || customer.Phone == reference || customer.Name == reference {
			return customer, nil
		}
	}
	return nil, api.NotFound("no customer matching %q", reference)
}

// --- status ---

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:    "status",
		Summary: "Move a repair to its next status",
		Description: `Move a repair order through its lifecycle. The move is validated
locally against the lifecycle table before any network call: an
illegal move fails immediately with the legal targets listed.

Only the status changes — every other field of the repair is left
untouched.`,
		Usage: "fixdesk repair status <number|id> <status>",
		Examples: []cli.Example{
			{
				Description: "Start working on a repair",
				Command:     "fixdesk repair status R-1042 in-progress",
			},
			{
				Description: "Hand the device back to the customer",
				Command:     "fixdesk repair status R-1042 delivered",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: fixdesk repair status <number|id> <status>")
			}

			target, err := schema.ParseStatus(args[1])
			if err != nil {
				return err
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

			previous := repair.Status
			updated, err := lifecycle.RequestTransition(ctx, shop.Client, repair, target)
			if err != nil {
				return err
			}

			logger.Info("repair moved",
				"repair", updated.RepairID,
				"from", string(previous),
				"to", string(updated.Status))
			fmt.Printf("%s: %s → %s\n", updated.RepairID, lifecycle.Label(previous), lifecycle.Label(updated.Status))
			return nil
		},
	}
}

// --- delete ---

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a repair order",
		Description: `Delete a repair order permanently. This removes the record; prefer
cancelling the repair ("fixdesk repair status R-1042 cancelled") to
keep the history.`,
		Usage: "fixdesk repair delete <number|id>",
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

			if err := shop.Client.DeleteRepair(ctx, repair.ID); err != nil {
				return err
			}

			logger.Info("repair deleted", "repair", repair.RepairID)
			fmt.Printf("%s deleted\n", repair.RepairID)
			return nil
		},
	}
}
