// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package customer implements the "fixdesk customer" subcommand group.
package customer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// Command returns the "customer" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "customer",
		Summary: "Customer directory commands",
		Description: `View and manage the customer directory.

Repairs reference customers by record ID; every device received at the
counter needs a customer on file first.`,
		Subcommands: []*cli.Command{
			listCommand(),
			addCommand(),
			editCommand(),
			deleteCommand(),
		},
	}
}

// --- list ---

type listParams struct {
	JSON bool `flag:"json" desc:"machine-readable output"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List customers",
		Usage:   "fixdesk customer list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			customers, err := shop.Client.Customers(ctx)
			if err != nil {
				return err
			}

			if params.JSON {
				return cli.PrintJSON(os.Stdout, customers)
			}

			if len(customers) == 0 {
				logger.Info("no customers on file")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPHONE\tADDRESS\tID")
			for _, customer := range customers {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					customer.Name, customer.Phone, customer.Address, customer.ID)
			}
			return tw.Flush()
		},
	}
}

// --- add ---

type addParams struct {
	Name    string `flag:"name,n"    desc:"customer full name"`
	Phone   string `flag:"phone,p"   desc:"customer phone number"`
	Address string `flag:"address,a" desc:"customer address"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Add a customer",
		Description: `Add a customer to the directory. Name and phone are required; the
phone number doubles as the quick lookup key at the counter.`,
		Usage: "fixdesk customer add --name NAME --phone PHONE [flags]",
		Examples: []cli.Example{
			{
				Description: "Register a walk-in customer",
				Command:     `fixdesk customer add --name "Sara Hassan" --phone 0100111222`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("add", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if params.Name == "" || params.Phone == "" {
				return fmt.Errorf("--name and --phone are required")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			created, err := shop.Client.CreateCustomer(ctx, schema.CustomerInput{
				Name:    params.Name,
				Phone:   params.Phone,
				Address: params.Address,
			})
			if err != nil {
				return err
			}

			logger.Info("customer added", "customer", created.Name, "id", created.ID)
			fmt.Printf("%s added (%s)\n", created.Name, created.ID)
			return nil
		},
	}
}

// --- edit ---

type editParams struct {
	Name    string `flag:"name,n"    desc:"new full name"`
	Phone   string `flag:"phone,p"   desc:"new phone number"`
	Address string `flag:"address,a" desc:"new address"`
}

func editCommand() *cli.Command {
	var params editParams

	return &cli.Command{
		Name:    "edit",
		Summary: "Edit a customer",
		Description: `Edit a customer record. Only the fields given as flags change;
everything else keeps its current value.`,
		Usage: "fixdesk customer edit <id|phone|name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Record a customer's new phone number",
				Command:     `fixdesk customer edit "Sara Hassan" --phone 0100999888`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("edit", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one customer reference is required")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			customer, err := findCustomer(ctx, shop, args[0])
			if err != nil {
				return err
			}

			input := schema.CustomerInput{
				Name:    customer.Name,
				Phone:   customer.Phone,
				Address: customer.Address,
			}
			if params.Name != "" {
				input.Name = params.Name
			}
			if params.Phone != "" {
				input.Phone = params.Phone
			}
			if params.Address != "" {
				input.Address = params.Address
			}

			updated, err := shop.Client.UpdateCustomer(ctx, customer.ID, input)
			if err != nil {
				return err
			}

			logger.Info("customer updated", "customer", updated.Name, "id", updated.ID)
			fmt.Printf("%s updated\n", updated.Name)
			return nil
		},
	}
}

// --- delete ---

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a customer",
		Usage:   "fixdesk customer delete <id|phone|name>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one customer reference is required")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			customer, err := findCustomer(ctx, shop, args[0])
			if err != nil {
				return err
			}

			if err := shop.Client.DeleteCustomer(ctx, customer.ID); err != nil {
				return err
			}

			logger.Info("customer deleted", "customer", customer.Name, "id", customer.ID)
			fmt.Printf("%s deleted\n", customer.Name)
			return nil
		},
	}
}

// findCustomer matches a customer by record ID, phone, or exact name.
func findCustomer(ctx context.Context, shop *cli.Shop, reference string) (*schema.Customer, error) {
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
