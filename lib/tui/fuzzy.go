// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf builds its character-class and case-folding tables lazily; a
// match against text with uppercase letters scores zero until the
// default scheme is initialized.
func init() {
	algo.Init("default")
}

// FuzzyResult holds the outcome of matching a pattern against a text:
// the fzf score (higher is better, zero means no match) and the rune
// positions of the matched characters for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// NewSlab allocates a reusable scratch buffer for the fzf matcher.
// Passing the same slab across many FuzzyMatch calls avoids
// re-allocating the dynamic-programming matrices on every keystroke.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch runs fzf's FuzzyMatchV2 algorithm case-insensitively
// against the text. An empty pattern returns a zero result; callers
// treat that as "matches everything, no highlight". The slab may be
// nil for one-off matches.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	// fzf expects the caller to lowercase the pattern when matching
	// case-insensitively.
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))

	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}
