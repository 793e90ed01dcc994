// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/fixdesk/fixdesk/lib/schema"
)

// FilterModel narrows the repair list client-side. The status groups
// choose the base set; the filter text matches across repair number,
// customer name and phone, device type, color, fault text, and status
// without round-tripping to the backend.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true while the filter input has keyboard focus (the
	// user pressed / to start typing).
	Active bool
}

// searchText concatenates a repair's searchable fields.
func searchText(repair schema.Repair) string {
	fields := []string{
		repair.RepairID,
		string(repair.DeviceType),
		repair.Color,
		repair.Fault,
		string(repair.Status),
	}
	if repair.Customer != nil {
		fields = append(fields, repair.Customer.Name, repair.Customer.Phone)
	}
	return strings.Join(fields, " ")
}

// ScoredRepair is a repair with its fuzzy match score and the matched
// rune positions within the searchable text, used for highlighting.
type ScoredRepair struct {
	Repair    schema.Repair
	Score     int
	Positions []int
}

// ApplyFuzzy runs fzf fuzzy matching over the repairs and returns the
// matches sorted best-first. An empty filter returns every repair with
// a zero score, preserving input order.
func (filter *FilterModel) ApplyFuzzy(repairs []schema.Repair, slab *util.Slab) []ScoredRepair {
	if filter.Input == "" {
		results := make([]ScoredRepair, len(repairs))
		for index, repair := range repairs {
			results[index] = ScoredRepair{Repair: repair}
		}
		return results
	}

	pattern := []rune(filter.Input)
	var results []ScoredRepair
	for _, repair := range repairs {
		match := fuzzyMatch(searchText(repair), pattern, slab)
		if match.Score <= 0 {
			continue
		}
		results = append(results, ScoredRepair{
			Repair:    repair,
			Score:     match.Score,
			Positions: match.Positions,
		})
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// HandleRune appends a typed character while the filter is active.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor; when inactive with text, shows a subtle indicator; when
// inactive and empty, renders nothing.
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			Render(" / " + filter.Input + cursor)
	}

	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width).
		Render(" filter: " + filter.Input)
}
