// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the generic building blocks for Fixdesk's
// terminal interface: the color theme, floating dropdown overlays,
// overlay splicing, scrollbars, fzf-based fuzzy matching, and a
// markdown renderer for free-text notes. Repair-specific screens and
// the bubbletea event loop live in [repairui]; this package holds
// everything that knows nothing about repairs.
package tui
