// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
)

// LogoutCommand returns the "logout" command. Logout always clears the
// local token; the backend's session invalidation is best-effort, so a
// dead network cannot keep a technician signed in.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "End the current session",
		Description: `Invalidate the session on the backend and remove the local token.

The local token is removed even when the backend call fails (for
example when the server is unreachable); the failure is logged and the
session is anonymous afterwards either way.`,
		Usage: "fixdesk logout",
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
				fmt.Fprintln(os.Stderr, "Already logged out")
				return nil
			}

			guard := shop.HydratedGuard(ctx)
			guard.Logout(ctx)
			fmt.Fprintf(os.Stderr, "Logged out; token removed from %s\n", shop.Store.Path())
			return nil
		},
	}
}
