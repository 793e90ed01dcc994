// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestDetailPaneListsNextActions(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(60, 30)
	repair := sampleRepairs()[0] // pending
	pane.SetRepair(&repair)

	view := ansi.Strip(pane.View(false))
	if !strings.Contains(view, "actions (s)") {
		t.Errorf("pending repair should list its actions:\n%s", view)
	}
	if !strings.Contains(view, "Start repair") {
		t.Errorf("pending repair should offer the in-progress move:\n%s", view)
	}
}

func TestDetailPaneTerminalRepairShowsClosedNote(t *testing.T) {
	pane := NewDetailPane(DefaultTheme)
	pane.SetSize(60, 30)
	repair := sampleRepairs()[2] // delivered
	pane.SetRepair(&repair)

	view := ansi.Strip(pane.View(false))
	if !strings.Contains(view, "delivered repairs are closed") {
		t.Errorf("terminal repair should explain why no actions exist:\n%s", view)
	}
	if strings.Contains(view, "actions (s)") {
		t.Errorf("terminal repair must not offer actions:\n%s", view)
	}
}
