// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fixdesk/fixdesk/lib/lifecycle"
	"github.com/fixdesk/fixdesk/lib/schema"
	"github.com/fixdesk/fixdesk/lib/tui"
)

// DetailPane renders the selected repair in the right pane: header,
// customer and device facts, money, dates, the markdown-rendered
// fault text, and the legal next actions for the current status.
type DetailPane struct {
	theme  Theme
	width  int
	height int

	repairID     string
	lines        []string
	scrollOffset int
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme Theme) DetailPane {
	return DetailPane{theme: theme}
}

// SetSize updates the pane dimensions and re-clamps the scroll.
func (pane *DetailPane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
	pane.clampScroll()
}

// SetRepair renders the given repair into the pane's line buffer.
// Scroll position resets when a different repair is shown and is
// preserved when the same repair refreshes in place.
func (pane *DetailPane) SetRepair(repair *schema.Repair) {
	if repair == nil {
		pane.repairID = ""
		pane.lines = nil
		pane.scrollOffset = 0
		return
	}
	if repair.ID != pane.repairID {
		pane.scrollOffset = 0
	}
	pane.repairID = repair.ID
	pane.lines = pane.renderLines(*repair)
	pane.clampScroll()
}

// ScrollBy moves the viewport by delta lines, clamped to the content.
func (pane *DetailPane) ScrollBy(delta int) {
	pane.scrollOffset += delta
	pane.clampScroll()
}

// ScrollToTop resets the viewport to the first line.
func (pane *DetailPane) ScrollToTop() {
	pane.scrollOffset = 0
}

// ScrollToBottom moves the viewport to the last page of content.
func (pane *DetailPane) ScrollToBottom() {
	pane.scrollOffset = len(pane.lines)
	pane.clampScroll()
}

func (pane *DetailPane) clampScroll() {
	maxOffset := len(pane.lines) - pane.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if pane.scrollOffset > maxOffset {
		pane.scrollOffset = maxOffset
	}
	if pane.scrollOffset < 0 {
		pane.scrollOffset = 0
	}
}

// View renders the visible window of the pane with a scrollbar column
// on the right edge.
func (pane *DetailPane) View(focused bool) string {
	if pane.height <= 0 {
		return ""
	}
	if len(pane.lines) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Width(pane.width).
			Render(" select a repair")
		return empty + strings.Repeat("\n", pane.height-1)
	}

	end := pane.scrollOffset + pane.height
	if end > len(pane.lines) {
		end = len(pane.lines)
	}
	visible := pane.lines[pane.scrollOffset:end]

	scrollbar := tui.RenderScrollbar(
		pane.theme, pane.height, len(pane.lines), pane.height, pane.scrollOffset, focused)
	scrollbarLines := strings.Split(scrollbar, "\n")

	contentWidth := pane.width - 1
	var rows []string
	for index := 0; index < pane.height; index++ {
		line := ""
		if index < len(visible) {
			line = visible[index]
		}
		padded := lipgloss.NewStyle().
			Width(contentWidth).
			MaxWidth(contentWidth).
			Render(line)
		bar := ""
		if index < len(scrollbarLines) {
			bar = scrollbarLines[index]
		}
		rows = append(rows, padded+bar)
	}
	return strings.Join(rows, "\n")
}

// renderLines produces the full detail content for a repair.
func (pane *DetailPane) renderLines(repair schema.Repair) []string {
	contentWidth := pane.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(pane.theme.HeaderForeground).
		Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(pane.theme.FaintText)
	valueStyle := lipgloss.NewStyle().
		Foreground(pane.theme.NormalText)
	moneyStyle := lipgloss.NewStyle().
		Foreground(pane.theme.Money)
	statusStyle := lipgloss.NewStyle().
		Foreground(pane.theme.StatusColor(repair.Status)).
		Bold(true)

	fact := func(label, value string) string {
		return " " + labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
	}

	var lines []string
	title := repair.RepairID
	if title == "" {
		title = repair.ID
	}
	lines = append(lines,
		" "+headerStyle.Render(title)+"  "+statusStyle.Render(lifecycle.Label(repair.Status)),
		"")

	if repair.Customer != nil {
		customer := repair.Customer.Name
		if repair.Customer.Phone != "" {
			customer += "  " + repair.Customer.Phone
		}
		lines = append(lines, fact("customer", customer))
	}
	device := string(repair.DeviceType)
	if repair.Color != "" {
		device += ", " + repair.Color
	}
	lines = append(lines, fact("device", device))

	lines = append(lines,
		" "+labelStyle.Render(fmt.Sprintf("%-12s", "price"))+moneyStyle.Render(fmt.Sprintf("%.2f", repair.Price)))
	if repair.WholesalePrice > 0 {
		lines = append(lines,
			" "+labelStyle.Render(fmt.Sprintf("%-12s", "parts cost"))+moneyStyle.Render(fmt.Sprintf("%.2f", repair.WholesalePrice)),
			" "+labelStyle.Render(fmt.Sprintf("%-12s", "profit"))+moneyStyle.Render(fmt.Sprintf("%.2f", repair.Profit)))
	}

	lines = append(lines, fact("received", repair.CreatedAt.Format("2006-01-02 15:04")))
	if repair.ExpectedCompletionDate != nil {
		lines = append(lines, fact("promised", repair.ExpectedCompletionDate.Format("2006-01-02")))
	}
	if repair.CompletedAt != nil {
		lines = append(lines, fact("completed", repair.CompletedAt.Format("2006-01-02 15:04")))
	}

	if strings.TrimSpace(repair.Fault) != "" {
		lines = append(lines, "", " "+labelStyle.Render("fault"))
		rendered := tui.RenderMarkdown(repair.Fault, pane.theme, contentWidth)
		for _, line := range strings.Split(rendered, "\n") {
			lines = append(lines, " "+line)
		}
	}

	lines = append(lines, "")
	lines = append(lines, pane.renderActions(repair)...)
	return lines
}

// renderActions lists the legal next moves for the repair's status.
// Terminal statuses get an explanatory note instead; the status
// dropdown (s) only ever offers what appears here.
func (pane *DetailPane) renderActions(repair schema.Repair) []string {
	labelStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)

	targets := lifecycle.Next(repair.Status)
	if len(targets) == 0 {
		note := "delivered repairs are closed"
		if repair.Status == schema.StatusCancelled {
			note = "cancelled repairs are closed"
		}
		return []string{" " + labelStyle.Render(note)}
	}

	lines := []string{" " + labelStyle.Render("actions (s)")}
	for _, target := range targets {
		actionStyle := lipgloss.NewStyle().Foreground(pane.theme.StatusColor(target))
		lines = append(lines, "   "+actionStyle.Render(lifecycle.ActionLabel(target))+
			labelStyle.Render(" → "+string(target)))
	}
	return lines
}
