// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package technician implements the "fixdesk technician" subcommand
// group. Staff management is an owner operation: the backend rejects
// these calls for accounts without the admin flag.
package technician

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/authz"
	"github.com/fixdesk/fixdesk/lib/schema"
	"github.com/fixdesk/fixdesk/lib/secret"
)

// Command returns the "technician" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "technician",
		Summary: "Staff account commands (admin)",
		Description: `Manage technician accounts: who can receive devices, edit records,
and delete. Deactivating an account blocks login without deleting the
technician's history.`,
		Subcommands: []*cli.Command{
			listCommand(),
			addCommand(),
			editCommand(),
			activateCommand(true),
			activateCommand(false),
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
		Summary: "List technician accounts",
		Usage:   "fixdesk technician list [flags]",
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

			technicians, err := shop.Client.Technicians(ctx)
			if err != nil {
				return err
			}

			if params.JSON {
				return cli.PrintJSON(os.Stdout, technicians)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tUSERNAME\tSTATE\tPERMISSIONS")
			for index := range technicians {
				technician := &technicians[index]
				state := "active"
				if !technician.Active {
					state = "inactive"
				}

				var grants []string
				for _, permission := range authz.Permissions {
					if authz.Holds(technician, permission) {
						grants = append(grants, permission.Short())
					}
				}
				if technician.IsAdmin {
					grants = append(grants, "admin")
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					technician.Name, technician.Username, state, strings.Join(grants, " "))
			}
			return tw.Flush()
		},
	}
}

// --- add ---

type addParams struct {
	Name         string   `flag:"name,n"        desc:"technician full name"`
	Username     string   `flag:"username,u"    desc:"login username"`
	PasswordFile string   `flag:"password-file" desc:"path to file containing the initial password, or - for stdin"`
	Grants       []string `flag:"grant,g"       desc:"permissions to grant (receive, add, edit, delete); repeatable"`
	Admin        bool     `flag:"admin"         desc:"make the account an administrator"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Create a technician account",
		Usage:   "fixdesk technician add --name NAME --username USER --password-file FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a counter technician who receives and records devices",
				Command:     "fixdesk technician add -n \"Omar Farouk\" -u omar --password-file - -g receive -g add",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("add", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if params.Name == "" || params.Username == "" {
				return fmt.Errorf("--name and --username are required")
			}
			if params.PasswordFile == "" {
				return fmt.Errorf("--password-file is required")
			}

			input := schema.TechnicianInput{
				Name:     params.Name,
				Username: params.Username,
				IsAdmin:  params.Admin,
			}
			for _, grant := range params.Grants {
				permission, err := authz.Parse(grant)
				if err != nil {
					return err
				}
				switch permission {
				case authz.Receive:
					input.CanReceive = true
				case authz.Add:
					input.CanAdd = true
				case authz.Edit:
					input.CanEdit = true
				case authz.Delete:
					input.CanDelete = true
				}
			}

			passwordBuffer, err := secret.ReadFromPath(params.PasswordFile)
			if err != nil {
				return err
			}
			defer passwordBuffer.Close()
			input.Password = passwordBuffer.String()

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			created, err := shop.Client.CreateTechnician(ctx, input)
			if err != nil {
				return err
			}

			logger.Info("technician created", "technician", created.Username)
			fmt.Printf("%s created (%s)\n", created.Name, created.Username)
			return nil
		},
	}
}

// --- edit ---

type editParams struct {
	Name         string   `flag:"name,n"        desc:"new full name"`
	PasswordFile string   `flag:"password-file" desc:"path to file containing a new password, or - for stdin"`
	Grants       []string `flag:"grant,g"       desc:"replacement permission set (receive, add, edit, delete); repeatable"`
	Admin        bool     `flag:"admin"         desc:"promote the account to administrator"`
	Staff        bool     `flag:"staff"         desc:"demote the account to regular staff"`
}

func editCommand() *cli.Command {
	var params editParams

	return &cli.Command{
		Name:    "edit",
		Summary: "Edit a technician account",
		Description: `Edit a technician account. Only the fields given as flags change.
Passing --grant replaces the whole permission set, so list every
permission the account should end up with.`,
		Usage: "fixdesk technician edit <username|id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Let an existing technician edit and delete records",
				Command:     "fixdesk technician edit omar -g receive -g add -g edit -g delete",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("edit", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one technician reference is required")
			}
			if params.Admin && params.Staff {
				return fmt.Errorf("--admin and --staff are mutually exclusive")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			technician, err := findTechnician(ctx, shop, args[0])
			if err != nil {
				return err
			}

			input := schema.TechnicianInput{
				Name:       technician.Name,
				Username:   technician.Username,
				CanReceive: technician.CanReceive,
				CanAdd:     technician.CanAdd,
				CanEdit:    technician.CanEdit,
				CanDelete:  technician.CanDelete,
				IsAdmin:    technician.IsAdmin,
			}
			if params.Name != "" {
				input.Name = params.Name
			}
			if len(params.Grants) > 0 {
				input.CanReceive = false
				input.CanAdd = false
				input.CanEdit = false
				input.CanDelete = false
				for _, grant := range params.Grants {
					permission, err := authz.Parse(grant)
					if err != nil {
						return err
					}
					switch permission {
					case authz.Receive:
						input.CanReceive = true
					case authz.Add:
						input.CanAdd = true
					case authz.Edit:
						input.CanEdit = true
					case authz.Delete:
						input.CanDelete = true
					}
				}
			}
			if params.Admin {
				input.IsAdmin = true
			}
			if params.Staff {
				input.IsAdmin = false
			}
			if params.PasswordFile != "" {
				passwordBuffer, err := secret.ReadFromPath(params.PasswordFile)
				if err != nil {
					return err
				}
				defer passwordBuffer.Close()
				input.Password = passwordBuffer.String()
			}

			updated, err := shop.Client.UpdateTechnician(ctx, technician.ID, input)
			if err != nil {
				return err
			}

			logger.Info("technician updated", "technician", updated.Username)
			fmt.Printf("%s updated\n", updated.Name)
			return nil
		},
	}
}

// --- delete ---

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a technician account",
		Description: `Delete a technician account outright. Prefer deactivate: it blocks
login while keeping the account's history attached to its repairs.`,
		Usage: "fixdesk technician delete <username|id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one technician reference is required")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			technician, err := findTechnician(ctx, shop, args[0])
			if err != nil {
				return err
			}

			if err := shop.Client.DeleteTechnician(ctx, technician.ID); err != nil {
				return err
			}

			logger.Info("technician deleted", "technician", technician.Username)
			fmt.Printf("%s deleted\n", technician.Name)
			return nil
		},
	}
}

// --- activate / deactivate ---

func activateCommand(active bool) *cli.Command {
	name := "deactivate"
	summary := "Deactivate a technician account"
	if active {
		name = "activate"
		summary = "Reactivate a technician account"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   "fixdesk technician " + name + " <username|id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one technician reference is required")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			technician, err := findTechnician(ctx, shop, args[0])
			if err != nil {
				return err
			}

			updated, err := shop.Client.SetTechnicianActive(ctx, technician.ID, active)
			if err != nil {
				return err
			}

			state := "deactivated"
			if updated.Active {
				state = "activated"
			}
			logger.Info("technician "+state, "technician", updated.Username)
			fmt.Printf("%s %s\n", updated.Name, state)
			return nil
		},
	}
}

// findTechnician matches a technician by record ID or username.
func findTechnician(ctx context.Context, shop *cli.Shop, reference string) (*schema.Technician, error) {
	technicians, err := shop.Client.Technicians(ctx)
	if err != nil {
		return nil, err
	}
	for index := range technicians {
		technician := &technicians[index]
		if technician.ID == reference || technician.Username == reference {
			return technician, nil
		}
	}
	return nil, api.NotFound("no technician matching %q", reference)
}
