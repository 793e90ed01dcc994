// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the fixdesk CLI.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/fixdesk/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). This is
// implemented in suggest.go.
//
// Flags bind to plain structs via struct tags through [FlagsFromParams]
// (see params.go), so a command's parameters live in one declaration
// next to its Run function.
//
// The shop connection shared by every networked command is built by
// [Connect]: it loads the YAML config, opens the persisted token
// store, and returns an API client whose bearer token tracks the store.
package cli
