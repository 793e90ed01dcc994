// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the Fixdesk TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail
	// scrolling depending on focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching between the list and the detail pane.
	FocusToggle key.Binding

	// Tab switching.
	TabDashboard   key.Binding
	TabRepairs     key.Binding
	TabCustomers   key.Binding
	TabTechnicians key.Binding

	// Filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Mutations.
	New          key.Binding // Open the create form for the active tab.
	Edit         key.Binding // Edit the selected record.
	Delete       key.Binding // Delete the selected record.
	Transition   key.Binding // Open the status dropdown for the selected repair.
	ToggleActive key.Binding // Toggle the selected technician's active flag.

	// Dictation toggle while a form's fault field has focus.
	Voice key.Binding

	Refresh key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	TabDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	TabRepairs: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "repairs"),
	),
	TabCustomers: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "customers"),
	),
	TabTechnicians: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "technicians"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Transition: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	ToggleActive: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle active"),
	),
	Voice: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("C-v", "dictate"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
