// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
	"github.com/fixdesk/fixdesk/lib/repairui"
	"github.com/fixdesk/fixdesk/lib/voice"
)

// UICommand returns the "ui" command launching the interactive
// terminal UI.
func UICommand() *cli.Command {
	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive terminal UI",
		Description: `Open the full-screen terminal UI: dashboard, the status-grouped
repair list with fuzzy filtering, the customer directory, and staff
management.

A stored session is restored on startup; otherwise the UI starts at
the login screen. When a speech transcriber is installed (see the
voice section of the config file), Ctrl+V dictates into the fault
field of the repair form.`,
		Usage: "fixdesk ui",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}

			capabilities := voice.Detect(shop.Config.Voice.Command)
			if capabilities.Available {
				logger.Info("speech transcriber detected", "command", capabilities.Command)
			}

			model := repairui.New(shop.Guard(), shop.Client, capabilities, shop.Config.Voice.Language)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running terminal UI: %w", err)
			}
			return nil
		},
	}
}
