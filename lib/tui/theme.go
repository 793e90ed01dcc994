// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fixdesk/fixdesk/lib/schema"
)

// Theme defines the color palette for Fixdesk's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
//
// The five status colors mirror the visual weight the shop staff rely
// on at a glance: a freshly received repair is neutral, active work is
// highlighted, finished work reads as success, a handed-over device is
// settled, and a cancellation stands out as a problem.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Repair status colors.
	StatusPending    lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusCompleted  lipgloss.Color
	StatusDelivered  lipgloss.Color
	StatusCancelled  lipgloss.Color

	// Money columns (price, wholesale, profit).
	Money lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Error and success notices in the status bar.
	NoticeError   lipgloss.Color
	NoticeSuccess lipgloss.Color

	// Dictation indicator shown while the microphone is live.
	VoiceActive lipgloss.Color

	// Floating overlays (dropdowns).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// StatusColor returns the color for a repair status. Unknown values
// return FaintText.
func (theme Theme) StatusColor(status schema.Status) lipgloss.Color {
	switch status {
	case schema.StatusPending:
		return theme.StatusPending
	case schema.StatusInProgress:
		return theme.StatusInProgress
	case schema.StatusCompleted:
		return theme.StatusCompleted
	case schema.StatusDelivered:
		return theme.StatusDelivered
	case schema.StatusCancelled:
		return theme.StatusCancelled
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme, designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusPending:    lipgloss.Color("245"), // gray: waiting in the queue
	StatusInProgress: lipgloss.Color("220"), // amber: on the bench
	StatusCompleted:  lipgloss.Color("114"), // green: ready for pickup
	StatusDelivered:  lipgloss.Color("75"),  // blue: out the door
	StatusCancelled:  lipgloss.Color("196"), // red: abandoned

	Money: lipgloss.Color("180"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NoticeError:   lipgloss.Color("196"),
	NoticeSuccess: lipgloss.Color("114"),

	VoiceActive: lipgloss.Color("203"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
