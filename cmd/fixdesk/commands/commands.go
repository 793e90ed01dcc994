// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete fixdesk CLI command tree. The
// binary's main function is a thin wrapper around [Root]; everything
// the tool can do is registered here.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	authcmd "github.com/fixdesk/fixdesk/cmd/fixdesk/auth"
	backupcmd "github.com/fixdesk/fixdesk/cmd/fixdesk/backup"
	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	customercmd "github.com/fixdesk/fixdesk/cmd/fixdesk/customer"
	repaircmd "github.com/fixdesk/fixdesk/cmd/fixdesk/repair"
	techniciancmd "github.com/fixdesk/fixdesk/cmd/fixdesk/technician"
	"github.com/fixdesk/fixdesk/lib/version"
)

// Root builds and returns the complete fixdesk CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "fixdesk",
		Description: `Fixdesk: repair shop counter tool.

Track devices from the counter to the customer's hands: receive
repairs, move them through the workshop lifecycle, and manage the
customer directory — from the interactive terminal UI or scriptable
subcommands.`,
		Subcommands: []*cli.Command{
			UICommand(),
			authcmd.LoginCommand(),
			authcmd.LogoutCommand(),
			authcmd.WhoAmICommand(),
			repaircmd.Command(),
			customercmd.Command(),
			techniciancmd.Command(),
			StatsCommand(),
			backupcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("fixdesk %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive terminal UI",
				Command:     "fixdesk ui",
			},
			{
				Description: "Authenticate as a technician (saves the token locally)",
				Command:     "fixdesk login sara",
			},
			{
				Description: "See what's on the bench",
				Command:     "fixdesk repair list --status in-progress",
			},
			{
				Description: "Start working on a repair",
				Command:     "fixdesk repair status R-1042 in-progress",
			},
			{
				Description: "Receive a device at the counter",
				Command:     `fixdesk repair add --customer 0100111222 --fault "screen cracked" --price 120`,
			},
			{
				Description: "Export a backup of the shop database",
				Command:     "fixdesk backup export --output shop.db",
			},
		},
	}
}
