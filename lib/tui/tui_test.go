// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFuzzyMatchScoresAndPositions(t *testing.T) {
	slab := NewSlab()

	result := FuzzyMatch("screen flickers after drop", []rune("scrflk"), slab)
	if result.Score <= 0 {
		t.Fatal("expected a positive score for a subsequence match")
	}
	if len(result.Positions) != 6 {
		t.Errorf("positions = %v, want 6 matched runes", result.Positions)
	}

	if miss := FuzzyMatch("screen flickers", []rune("zzz"), slab); miss.Score != 0 || miss.Positions != nil {
		t.Errorf("non-match should be zero, got %+v", miss)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	slab := NewSlab()
	lower := FuzzyMatch("Battery Drains", []rune("battery"), slab)
	upper := FuzzyMatch("Battery Drains", []rune("BATTERY"), slab)
	if lower.Score <= 0 || upper.Score <= 0 {
		t.Error("matching should ignore pattern case")
	}
}

func TestDropdownCursorWraps(t *testing.T) {
	dropdown := &DropdownOverlay{
		Options: []DropdownOption{
			{Label: "Start repair", Value: "in-progress"},
			{Label: "Cancel repair", Value: "cancelled"},
		},
	}

	dropdown.MoveUp()
	if dropdown.Cursor != 1 {
		t.Errorf("MoveUp from top: cursor = %d, want wrap to 1", dropdown.Cursor)
	}
	dropdown.MoveDown()
	if dropdown.Cursor != 0 {
		t.Errorf("MoveDown from bottom: cursor = %d, want wrap to 0", dropdown.Cursor)
	}
	if got := dropdown.Selected().Value; got != "in-progress" {
		t.Errorf("Selected = %q", got)
	}
}

func TestDropdownWidthFitsLongestLabel(t *testing.T) {
	dropdown := &DropdownOverlay{
		Options: []DropdownOption{
			{Label: "Start repair"},
			{Label: "Hand to customer"},
		},
	}
	// "> " marker, padding, and the longest label must all fit.
	if width := dropdown.Width(); width < len("Hand to customer")+3 {
		t.Errorf("Width = %d, too narrow for longest label", width)
	}

	lines := dropdown.Render(DefaultTheme)
	if len(lines) != 2 {
		t.Fatalf("Render produced %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if got := ansi.StringWidth(line); got != dropdown.Width() {
			t.Errorf("line width = %d, want %d", got, dropdown.Width())
		}
	}
}

func TestRenderMarkdownWrapsParagraphs(t *testing.T) {
	input := "customer reports the device shuts down under load and the fan never spins up even after cleaning"
	output := RenderMarkdown(input, DefaultTheme, 40)

	for _, line := range strings.Split(output, "\n") {
		if width := ansi.StringWidth(line); width > 40 {
			t.Errorf("line exceeds width 40 (%d): %q", width, line)
		}
	}
	joined := strings.ReplaceAll(ansi.Strip(output), "\n", " ")
	if !strings.Contains(joined, "shuts down under load") {
		t.Error("paragraph text missing from output")
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	input := "- replace thermal paste\n- test under load"
	stripped := ansi.Strip(RenderMarkdown(input, DefaultTheme, 60))

	if !strings.Contains(stripped, "- replace thermal paste") {
		t.Errorf("bullet missing:\n%s", stripped)
	}
	if !strings.Contains(stripped, "- test under load") {
		t.Errorf("second bullet missing:\n%s", stripped)
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	input := "```\nsmartctl -a /dev/sda\n```"
	stripped := ansi.Strip(RenderMarkdown(input, DefaultTheme, 60))
	if !strings.Contains(stripped, "smartctl -a /dev/sda") {
		t.Errorf("code block content missing:\n%s", stripped)
	}
}

func TestRenderMarkdownIndentedCode(t *testing.T) {
	input := "diagnostic dump:\n\n    fan rpm 0\n    temp 96C"
	stripped := ansi.Strip(RenderMarkdown(input, DefaultTheme, 60))
	if !strings.Contains(stripped, "fan rpm 0") || !strings.Contains(stripped, "temp 96C") {
		t.Errorf("indented code content missing:\n%s", stripped)
	}
}

func TestSpliceOverlayReplacesAnchoredRegion(t *testing.T) {
	view := strings.Join([]string{
		"aaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbb",
		"cccccccccccccccccccc",
	}, "\n")

	spliced := SpliceOverlay(view, []string{"XXXX"}, 4, 1)
	lines := strings.Split(spliced, "\n")
	if len(lines) != 3 {
		t.Fatalf("line count changed: %d", len(lines))
	}

	middle := ansi.Strip(lines[1])
	if !strings.Contains(middle, "XXXX") {
		t.Errorf("overlay missing from anchored line: %q", middle)
	}
	if !strings.HasPrefix(middle, "bbbb") {
		t.Errorf("text left of anchor lost: %q", middle)
	}
	if lines[0] != "aaaaaaaaaaaaaaaaaaaa" || lines[2] != "cccccccccccccccccccc" {
		t.Error("lines outside the overlay must be untouched")
	}
}

func TestRenderScrollbarThumbTracksOffset(t *testing.T) {
	top := ansi.Strip(RenderScrollbar(DefaultTheme, 10, 100, 10, 0, false))
	bottom := ansi.Strip(RenderScrollbar(DefaultTheme, 10, 100, 10, 90, false))
	if top == bottom {
		t.Error("thumb position should change with scroll offset")
	}

	// Content that fits gets a full-height thumb.
	full := ansi.Strip(RenderScrollbar(DefaultTheme, 5, 3, 10, 0, false))
	if strings.Contains(full, "│") && !strings.Contains(full, "┃") {
		t.Errorf("expected full thumb when content fits:\n%q", full)
	}
}
