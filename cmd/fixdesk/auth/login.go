// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/secret"
)

// loginParams holds the flags for the login command.
type loginParams struct {
	PasswordFile string `flag:"password-file" desc:"path to file containing the password, or - to read one line from stdin (default: prompt)"`
}

// LoginCommand returns the "login" command for authenticating a
// technician. On success the bearer token is saved to the session
// token file; subsequent commands (and the TUI) use it transparently.
func LoginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate as a technician",
		Description: `Log in to the shop backend and save the session locally.

After login, commands like "fixdesk repair list" and "fixdesk ui" use
the saved token transparently — no flags needed.

The token file is stored at ~/.config/fixdesk/token (or
$FIXDESK_SESSION_FILE if set, or $XDG_CONFIG_HOME/fixdesk/token). The
file is written with mode 0600 (owner-only read/write) since it grants
access to the shop's records.

The password can be provided via --password-file (a path to a file
containing the password, or - to read from stdin) or prompted
interactively when the flag is omitted.`,
		Usage: "fixdesk login <username> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "fixdesk login sara",
			},
			{
				Description: "Log in with password from file",
				Command:     "fixdesk login sara --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("login", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 {
				return fmt.Errorf("username is required\n\nUsage: fixdesk login <username> [flags]")
			}
			username := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			passwordBuffer, err := readLoginPassword(params.PasswordFile)
			if err != nil {
				return err
			}
			defer passwordBuffer.Close()

			shop, err := cli.Connect()
			if err != nil {
				return err
			}

			guard := shop.HydratedGuard(ctx)
			if err := guard.Login(ctx, username, passwordBuffer.String()); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			user := guard.CurrentUser()
			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", user.Name, user.Username)
			fmt.Fprintf(os.Stderr, "Token saved to %s\n", shop.Store.Path())
			return nil
		},
	}
}

// readLoginPassword reads the password for the login command. An empty
// path prompts interactively on the terminal with echo disabled;
// otherwise the path (or "-" for stdin) is handed to the secret reader.
func readLoginPassword(passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" {
		return secret.ReadFromPath(passwordFile)
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, err
	}
	return buffer, nil
}
