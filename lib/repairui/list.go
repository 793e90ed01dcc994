// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fixdesk/fixdesk/lib/lifecycle"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// Column widths for the repair list table. The fault column fills the
// remaining space; all others are fixed.
const (
	columnWidthRepairID = 9  // "R-1042   "
	columnWidthCustomer = 18 // customer name
	columnWidthDevice   = 8  // device type
	columnWidthPrice    = 9  // right-aligned price
)

// deviceIcon returns a double-width emoji for the device category so
// the device kind is recognizable at a glance.
func deviceIcon(deviceType schema.DeviceType) string {
	switch deviceType {
	case schema.DeviceMobile:
		return "📱"
	case schema.DeviceLaptop:
		return "💻"
	case schema.DeviceTablet:
		return "📟"
	case schema.DeviceDesktop:
		return "🖥️"
	default:
		return "🔩"
	}
}

// ListItem is a single row in the rendered repair list: either a
// status group header or a repair row.
type ListItem struct {
	// IsHeader is true for status group headers.
	IsHeader bool

	// For headers: the group's status and member count.
	GroupStatus schema.Status
	GroupCount  int
	Collapsed   bool

	// For repair rows.
	Repair schema.Repair

	// MatchPositions holds matched rune indices within the row's
	// searchable text when a fuzzy filter is active.
	MatchPositions []int
}

// BuildListItems groups repairs by status in lifecycle order, emitting
// a header for each non-empty group followed by its repairs. Collapsed
// groups emit only the header.
func BuildListItems(repairs []schema.Repair, collapsed map[schema.Status]bool) []ListItem {
	grouped := make(map[schema.Status][]schema.Repair)
	for _, repair := range repairs {
		grouped[repair.Status] = append(grouped[repair.Status], repair)
	}

	var items []ListItem
	for _, status := range schema.Statuses {
		members := grouped[status]
		if len(members) == 0 {
			continue
		}
		items = append(items, ListItem{
			IsHeader:    true,
			GroupStatus: status,
			GroupCount:  len(members),
			Collapsed:   collapsed[status],
		})
		if collapsed[status] {
			continue
		}
		for _, repair := range members {
			items = append(items, ListItem{Repair: repair})
		}
	}
	return items
}

// ListRenderer handles table-style rendering of repair rows within a
// given width.
type ListRenderer struct {
	theme Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// RenderRow renders a repair as a formatted table row:
//
//	📱 R-1042  Sara Hassan       mobile     120.00  screen flickers after drop
//
// The selected flag switches to highlight styling.
func (renderer ListRenderer) RenderRow(repair schema.Repair, selected bool) string {
	faultWidth := renderer.width - 4 - columnWidthRepairID - columnWidthCustomer - columnWidthDevice - columnWidthPrice
	if faultWidth < 10 {
		faultWidth = 10
	}

	customerName := ""
	if repair.Customer != nil {
		customerName = repair.Customer.Name
	}

	fault := firstLine(repair.Fault)
	if lipgloss.Width(fault) > faultWidth {
		fault = truncateString(fault, faultWidth-1) + "…"
	}

	if selected {
		baseStyle := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		row := " " + deviceIcon(repair.DeviceType) + " " +
			baseStyle.Width(columnWidthRepairID).Bold(true).Render(repair.RepairID) +
			baseStyle.Width(columnWidthCustomer).Render(truncateString(customerName, columnWidthCustomer-1)) +
			baseStyle.Width(columnWidthDevice).Render(string(repair.DeviceType)) +
			baseStyle.Width(columnWidthPrice).Align(lipgloss.Right).Render(fmt.Sprintf("%.2f ", repair.Price)) +
			baseStyle.Render(" "+fault)
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
	}

	idStyle := lipgloss.NewStyle().
		Width(columnWidthRepairID).
		Foreground(renderer.theme.StatusColor(repair.Status))
	customerStyle := lipgloss.NewStyle().
		Width(columnWidthCustomer).
		Foreground(renderer.theme.NormalText)
	deviceStyle := lipgloss.NewStyle().
		Width(columnWidthDevice).
		Foreground(renderer.theme.FaintText)
	priceStyle := lipgloss.NewStyle().
		Width(columnWidthPrice).
		Align(lipgloss.Right).
		Foreground(renderer.theme.Money)
	faultStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.FaintText)

	row := " " + deviceIcon(repair.DeviceType) + " " +
		idStyle.Render(repair.RepairID) +
		customerStyle.Render(truncateString(customerName, columnWidthCustomer-1)) +
		deviceStyle.Render(string(repair.DeviceType)) +
		priceStyle.Render(fmt.Sprintf("%.2f ", repair.Price)) +
		faultStyle.Render(" "+fault)

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// RenderGroupHeader renders a status group header with a collapse
// indicator and member count:
//
//	▼ In progress  (4)
func (renderer ListRenderer) RenderGroupHeader(item ListItem, selected bool) string {
	indicator := "▼"
	if item.Collapsed {
		indicator = "▶"
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.StatusColor(item.GroupStatus)).
		Bold(true).
		Width(renderer.width).
		MaxWidth(renderer.width)
	if selected {
		headerStyle = headerStyle.
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
	}

	label := lifecycle.Label(item.GroupStatus)
	return headerStyle.Render(fmt.Sprintf(" %s %s  (%d)", indicator, label, item.GroupCount))
}

// firstLine returns the text up to the first newline.
func firstLine(text string) string {
	for index, character := range text {
		if character == '\n' {
			return text[:index]
		}
	}
	return text
}

// truncateString truncates a string to maxWidth visual columns,
// measuring with lipgloss so multi-byte characters are handled.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
