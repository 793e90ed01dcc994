// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import "github.com/fixdesk/fixdesk/lib/tui"

// Theme re-exports the shared TUI theme type.
type Theme = tui.Theme

// DefaultTheme re-exports the built-in dark-terminal color scheme.
var DefaultTheme = tui.DefaultTheme
