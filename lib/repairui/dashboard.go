// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fixdesk/fixdesk/lib/schema"
)

// renderDashboard lays out the shop's aggregate numbers as a row of
// cards plus the most recent repairs underneath. Stats come straight
// from the backend; nothing is computed client-side.
func renderDashboard(theme Theme, stats *schema.DashboardStats, recent []schema.Repair, width, height int) string {
	if stats == nil {
		return lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Render(" loading dashboard…")
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1).
		Width(18)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	card := func(label, value string, color lipgloss.Color) string {
		valueStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
		return cardStyle.Render(valueStyle.Render(value) + "\n" + labelStyle.Render(label))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("total profit", fmt.Sprintf("%.2f", stats.TotalProfit), theme.Money),
		card("pending", fmt.Sprintf("%d", stats.PendingRepairs), theme.StatusPending),
		card("in progress", fmt.Sprintf("%d", stats.InProgressRepairs), theme.StatusInProgress),
		card("completed", fmt.Sprintf("%d", stats.CompletedRepairs), theme.StatusCompleted),
		card("new customers", fmt.Sprintf("%d", stats.NewCustomers), theme.StatusDelivered),
	)

	var body strings.Builder
	body.WriteString(cards)
	body.WriteString("\n\n")

	if len(recent) > 0 {
		headerStyle := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true)
		body.WriteString(headerStyle.Render(" recent repairs") + "\n")

		renderer := NewListRenderer(theme, width)
		rows := len(recent)
		// Leave room for the cards block and header.
		if maxRows := height - 8; maxRows > 0 && rows > maxRows {
			rows = maxRows
		}
		for index := 0; index < rows; index++ {
			body.WriteString(renderer.RenderRow(recent[index], false) + "\n")
		}
	}

	return body.String()
}
