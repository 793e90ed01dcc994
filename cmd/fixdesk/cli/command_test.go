// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "fixdesk",
		Subcommands: []*Command{
			{
				Name: "repair",
				Subcommands: []*Command{
					{
						Name: "list",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							ran = append(ran, "repair list")
							ran = append(ran, args...)
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"repair", "list", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 2 || ran[0] != "repair list" || ran[1] != "extra" {
		t.Errorf("ran = %v", ran)
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "fixdesk",
		Subcommands: []*Command{
			{Name: "repair", Summary: "Manage repairs"},
			{Name: "customer", Summary: "Manage customers"},
		},
	}

	err := root.Execute(context.Background(), []string{"repar"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "repair"`) {
		t.Errorf("error missing suggestion: %v", err)
	}
}

func TestExecuteUnknownCommandNoCloseMatch(t *testing.T) {
	root := &Command{
		Name: "fixdesk",
		Subcommands: []*Command{
			{Name: "repair", Summary: "Manage repairs"},
		},
	}

	err := root.Execute(context.Background(), []string{"zzzzzzzzzz"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("unexpected suggestion for distant input: %v", err)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var status string
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVar(&status, "status", "", "filter by status")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--status", "pending"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if status != "pending" {
		t.Errorf("status = %q, want pending", status)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.String("status", "", "filter by status")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--staus", "pending"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--status") {
		t.Errorf("error missing flag suggestion: %v", err)
	}
}

func TestExecuteSubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "fixdesk",
		Subcommands: []*Command{
			{Name: "repair", Summary: "Manage repairs"},
		},
	}

	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("err = %v, want subcommand required", err)
	}
}

func TestPrintHelpListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:        "fixdesk",
		Description: "Repair shop counter tool.",
		Subcommands: []*Command{
			{Name: "repair", Summary: "Manage repairs"},
			{Name: "login", Summary: "Authenticate"},
		},
		Examples: []Example{
			{Description: "Log in", Command: "fixdesk login sara"},
		},
	}

	var out strings.Builder
	root.PrintHelp(&out)
	help := out.String()

	for _, want := range []string{"Repair shop counter tool.", "repair", "Manage repairs", "fixdesk login sara", "Run 'fixdesk <command> --help'"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestFullNameWalksParents(t *testing.T) {
	leaf := &Command{Name: "status"}
	middle := &Command{Name: "repair", Subcommands: []*Command{leaf}}
	root := &Command{Name: "fixdesk", Subcommands: []*Command{middle}}
	middle.parent = root
	leaf.parent = middle

	if got := leaf.fullName(); got != "fixdesk repair status" {
		t.Errorf("fullName = %q", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"repair", "repair", 0},
		{"repar", "repair", 1},
		{"cusotmer", "customer", 2},
		{"abc", "xyz", 3},
	}
	for _, testCase := range cases {
		if got := levenshtein(testCase.a, testCase.b); got != testCase.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", testCase.a, testCase.b, got, testCase.want)
		}
	}
}
