// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup implements the "fixdesk backup" subcommand group:
// exporting the shop database, restoring from a backup file, and the
// destructive full reset.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/fixdesk/fixdesk/cmd/fixdesk/cli"
)

// Command returns the "backup" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "backup",
		Summary: "Backup and restore commands (admin)",
		Description: `Export the shop database to a file, restore it from a previous
export, or wipe all records. The backup blob is passed through
unmodified; the export prints a BLAKE3 digest so a restore can be
checked against the file that was saved.`,
		Subcommands: []*cli.Command{
			exportCommand(),
			importCommand(),
			resetCommand(),
		},
	}
}

// --- export ---

type exportParams struct {
	Output string `flag:"output,o" desc:"destination file (default: fixdesk-backup-<date>.db)"`
}

func exportCommand() *cli.Command {
	var params exportParams

	return &cli.Command{
		Name:    "export",
		Summary: "Export the shop database to a file",
		Usage:   "fixdesk backup export [flags]",
		Examples: []cli.Example{
			{
				Description: "Export to an explicit path",
				Command:     "fixdesk backup export --output /srv/backups/shop.db",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("export", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			destination := params.Output
			if destination == "" {
				destination = fmt.Sprintf("fixdesk-backup-%s.db", time.Now().Format("2006-01-02"))
			}

			file, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
			if err != nil {
				return fmt.Errorf("creating backup file: %w", err)
			}

			digest, size, err := shop.Client.ExportBackup(ctx, file)
			if err != nil {
				file.Close()
				os.Remove(destination)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing backup file: %w", err)
			}

			logger.Info("backup exported", "path", destination, "bytes", size, "blake3", digest)
			fmt.Printf("%s (%d bytes)\nblake3: %s\n", destination, size, digest)
			return nil
		},
	}
}

// --- import ---

func importCommand() *cli.Command {
	return &cli.Command{
		Name:    "import",
		Summary: "Restore the shop database from a backup file",
		Description: `Upload a previously exported backup file. The backend replaces its
database with the uploaded contents; records created since the export
are lost.`,
		Usage: "fixdesk backup import <file>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one backup file is required")
			}
			path := args[0]

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening backup file: %w", err)
			}
			defer file.Close()

			if err := shop.Client.ImportBackup(ctx, filepath.Base(path), file); err != nil {
				return err
			}

			logger.Info("backup imported", "path", path)
			fmt.Println("backup restored")
			return nil
		},
	}
}

// --- reset ---

type resetParams struct {
	Force bool `flag:"force" desc:"actually wipe all records"`
}

func resetCommand() *cli.Command {
	var params resetParams

	return &cli.Command{
		Name:    "reset",
		Summary: "Delete all shop records",
		Description: `Wipe every repair, customer, and statistic from the backend.
Technician accounts survive. Refuses to run without --force.`,
		Usage: "fixdesk backup reset --force",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("reset", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if !params.Force {
				return fmt.Errorf("refusing to wipe all records without --force")
			}

			shop, err := cli.Connect()
			if err != nil {
				return err
			}
			if err := shop.RequireToken(); err != nil {
				return err
			}

			if err := shop.Client.ResetData(ctx); err != nil {
				return err
			}

			logger.Info("all records wiped")
			fmt.Println("all records wiped")
			return nil
		},
	}
}
