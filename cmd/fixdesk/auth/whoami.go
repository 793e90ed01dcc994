// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/authz"
)

// WhoAmICommand returns the "whoami" command. It verifies the stored
// token against the backend, so a revoked or expired session reports
// as anonymous rather than echoing stale local state.
func WhoAmICommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session identity",
		Description: `Show who is logged in, verified against the backend.

Exits with code 1 when no session exists or the stored token is no
longer valid.`,
		Usage: "fixdesk whoami",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}

			token, err := shop.Store.Load()
			if err != nil {
				return err
			}
			if token == "" {
				fmt.Fprintln(os.Stderr, "Not logged in")
				return &cli.ExitError{Code: 1}
			}

			user, err := shop.Client.Me(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Stored token is no longer valid: %v\n", err)
				return &cli.ExitError{Code: 1}
			}

			var grants []string
			for _, permission := range authz.Permissions {
				if authz.Holds(user, permission) {
					grants = append(grants, permission.Short())
				}
			}
			if user.IsAdmin {
				grants = append(grants, "admin")
			}

			fmt.Printf("%s (%s)\n", user.Name, user.Username)
			if len(grants) > 0 {
				fmt.Printf("permissions: %s\n", strings.Join(grants, " "))
			}
			if !user.Active {
				fmt.Println("account is deactivated")
			}
			return nil
		},
	}
}
