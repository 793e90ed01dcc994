// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginForm is the credential prompt shown whenever the guard decides
// the session is anonymous. Tab moves between the two fields, enter
// submits, and the backend's rejection message renders under the form
// without clearing what was typed.
type LoginForm struct {
	theme    Theme
	username textinput.Model
	password textinput.Model
	focused  int // 0 = username, 1 = password.

	// Failure message from the last rejected attempt.
	failure string

	// submitting is true while a login request is in flight; input is
	// ignored until the result comes back.
	submitting bool
}

// NewLoginForm creates the login form with the username field focused.
func NewLoginForm(theme Theme) LoginForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginForm{theme: theme, username: username, password: password}
}

// Values returns the entered credentials.
func (form *LoginForm) Values() (username, password string) {
	return strings.TrimSpace(form.username.Value()), form.password.Value()
}

// Ready reports whether both fields are non-empty.
func (form *LoginForm) Ready() bool {
	username, password := form.Values()
	return username != "" && password != ""
}

// Submitting reports whether a login request is in flight.
func (form *LoginForm) Submitting() bool {
	return form.submitting
}

// SetSubmitting marks a login request as in flight (or finished).
func (form *LoginForm) SetSubmitting(submitting bool) {
	form.submitting = submitting
}

// SetFailure records a rejection message to display under the form.
// The typed credentials stay in place so the user can correct a typo
// instead of retyping everything.
func (form *LoginForm) SetFailure(message string) {
	form.failure = message
	form.submitting = false
}

// Update routes a message to the focused field and handles focus
// movement. Enter on a ready form is handled by the caller (it owns
// the guard); this method only manages field state.
func (form *LoginForm) Update(msg tea.Msg) tea.Cmd {
	if form.submitting {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab", "up", "down":
			form.toggleFocus()
			return nil
		}
	}

	var cmd tea.Cmd
	if form.focused == 0 {
		form.username, cmd = form.username.Update(msg)
	} else {
		form.password, cmd = form.password.Update(msg)
	}
	return cmd
}

func (form *LoginForm) toggleFocus() {
	if form.focused == 0 {
		form.focused = 1
		form.username.Blur()
		form.password.Focus()
	} else {
		form.focused = 0
		form.password.Blur()
		form.username.Focus()
	}
}

// View renders the centered login box.
func (form *LoginForm) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(form.theme.HeaderForeground).
		Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(form.theme.FaintText)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(form.theme.BorderColor).
		Padding(1, 2)

	var body strings.Builder
	body.WriteString(titleStyle.Render("Fixdesk") + "\n\n")
	body.WriteString(labelStyle.Render("username") + "\n")
	body.WriteString(form.username.View() + "\n\n")
	body.WriteString(labelStyle.Render("password") + "\n")
	body.WriteString(form.password.View() + "\n")

	if form.submitting {
		body.WriteString("\n" + labelStyle.Render("signing in…"))
	} else if form.failure != "" {
		failureStyle := lipgloss.NewStyle().Foreground(form.theme.NoticeError)
		body.WriteString("\n" + failureStyle.Render(form.failure))
	}

	body.WriteString("\n\n" + labelStyle.Render("enter to sign in"))

	box := boxStyle.Render(body.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
