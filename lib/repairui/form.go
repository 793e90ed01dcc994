// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fixdesk/fixdesk/lib/schema"
)

// Field indices for RepairForm focus order.
const (
	fieldCustomer = iota
	fieldDevice
	fieldColor
	fieldFault
	fieldPrice
	fieldWholesale
	repairFieldCount
)

// RepairForm is the create/edit form for a repair. The customer and
// device rows cycle through fixed choices with left/right; the text
// fields are free input. The fault field accepts dictation: while the
// microphone is live, recognized phrases append to whatever was
// already typed.
type RepairForm struct {
	theme Theme

	// EditingID is the repair being edited, or empty when creating.
	EditingID string

	customers     []schema.Customer
	customerIndex int
	deviceIndex   int

	color     textinput.Model
	fault     textinput.Model
	price     textinput.Model
	wholesale textinput.Model

	focused int

	// VoiceActive is true while the dictation microphone is live.
	VoiceActive bool

	failure string
}

func newFormInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	return input
}

// NewRepairForm creates an empty repair form over the known customers.
func NewRepairForm(theme Theme, customers []schema.Customer) *RepairForm {
	form := &RepairForm{
		theme:     theme,
		customers: customers,
		color:     newFormInput("black", 32),
		fault:     newFormInput("reported fault", 2000),
		price:     newFormInput("0.00", 12),
		wholesale: newFormInput("0.00", 12),
	}
	form.applyFocus()
	return form
}

// NewRepairFormEdit creates a form pre-filled from an existing repair.
func NewRepairFormEdit(theme Theme, customers []schema.Customer, repair schema.Repair) *RepairForm {
	form := NewRepairForm(theme, customers)
	form.EditingID = repair.ID

	if repair.Customer != nil {
		for index, customer := range customers {
			if customer.ID == repair.Customer.ID {
				form.customerIndex = index
				break
			}
		}
	}
	for index, deviceType := range schema.DeviceTypes {
		if deviceType == repair.DeviceType {
			form.deviceIndex = index
			break
		}
	}
	form.color.SetValue(repair.Color)
	form.fault.SetValue(repair.Fault)
	form.price.SetValue(strconv.FormatFloat(repair.Price, 'f', 2, 64))
	if repair.WholesalePrice > 0 {
		form.wholesale.SetValue(strconv.FormatFloat(repair.WholesalePrice, 'f', 2, 64))
	}
	return form
}

// FaultFocused reports whether the dictation target field has focus.
func (form *RepairForm) FaultFocused() bool {
	return form.focused == fieldFault
}

// AppendDictation appends a recognized phrase to the fault text,
// separated from existing text by a space.
func (form *RepairForm) AppendDictation(phrase string) {
	current := form.fault.Value()
	if current != "" && !strings.HasSuffix(current, " ") {
		current += " "
	}
	form.fault.SetValue(current + phrase)
	form.fault.CursorEnd()
}

// SetFailure records a validation or backend failure to display.
func (form *RepairForm) SetFailure(message string) {
	form.failure = message
}

// Update routes input to the focused field. Tab and shift+tab move
// focus; left/right cycle the customer and device choices.
func (form *RepairForm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab", "down":
			form.focused = (form.focused + 1) % repairFieldCount
			form.applyFocus()
			return nil
		case "shift+tab", "up":
			form.focused = (form.focused + repairFieldCount - 1) % repairFieldCount
			form.applyFocus()
			return nil
		case "left":
			if form.cycleChoice(-1) {
				return nil
			}
		case "right":
			if form.cycleChoice(1) {
				return nil
			}
		}
	}

	var cmd tea.Cmd
	switch form.focused {
	case fieldColor:
		form.color, cmd = form.color.Update(msg)
	case fieldFault:
		form.fault, cmd = form.fault.Update(msg)
	case fieldPrice:
		form.price, cmd = form.price.Update(msg)
	case fieldWholesale:
		form.wholesale, cmd = form.wholesale.Update(msg)
	}
	return cmd
}

// cycleChoice moves the focused choice row by delta. Returns false
// when the focused field is free text, so arrow keys reach the input.
func (form *RepairForm) cycleChoice(delta int) bool {
	switch form.focused {
	case fieldCustomer:
		if len(form.customers) > 0 {
			form.customerIndex = (form.customerIndex + delta + len(form.customers)) % len(form.customers)
		}
		return true
	case fieldDevice:
		count := len(schema.DeviceTypes)
		form.deviceIndex = (form.deviceIndex + delta + count) % count
		return true
	}
	return false
}

func (form *RepairForm) applyFocus() {
	inputs := []*textinput.Model{&form.color, &form.fault, &form.price, &form.wholesale}
	fields := []int{fieldColor, fieldFault, fieldPrice, fieldWholesale}
	for index, input := range inputs {
		if form.focused == fields[index] {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// Input validates the form and builds the wire payload. Validation
// mirrors what the backend enforces so obvious mistakes fail before a
// round trip.
func (form *RepairForm) Input() (schema.RepairInput, error) {
	var input schema.RepairInput

	if len(form.customers) == 0 {
		return input, fmt.Errorf("no customers on file; add the customer first")
	}
	input.Customer = form.customers[form.customerIndex].ID
	input.DeviceType = schema.DeviceTypes[form.deviceIndex]
	input.Color = strings.TrimSpace(form.color.Value())

	input.Fault = strings.TrimSpace(form.fault.Value())
	if input.Fault == "" {
		return input, fmt.Errorf("fault description must not be empty")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(form.price.Value()), 64)
	if err != nil || price < 0 {
		return input, fmt.Errorf("price must be a non-negative number")
	}
	input.Price = price

	if raw := strings.TrimSpace(form.wholesale.Value()); raw != "" {
		wholesale, err := strconv.ParseFloat(raw, 64)
		if err != nil || wholesale < 0 {
			return input, fmt.Errorf("parts cost must be a non-negative number")
		}
		input.WholesalePrice = wholesale
	}

	return input, nil
}

// View renders the form.
func (form *RepairForm) View(width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(form.theme.FaintText).Width(12)
	focusedLabel := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true).Width(12)
	choiceStyle := lipgloss.NewStyle().Foreground(form.theme.NormalText)

	label := func(field int, text string) string {
		if form.focused == field {
			return focusedLabel.Render(text)
		}
		return labelStyle.Render(text)
	}

	customerName := "(none on file)"
	if len(form.customers) > 0 {
		customer := form.customers[form.customerIndex]
		customerName = customer.Name
		if customer.Phone != "" {
			customerName += "  " + customer.Phone
		}
	}

	title := "new repair"
	if form.EditingID != "" {
		title = "edit repair"
	}
	titleStyle := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true)

	faultLabel := "fault"
	if form.VoiceActive {
		micStyle := lipgloss.NewStyle().Foreground(form.theme.VoiceActive).Bold(true)
		faultLabel = "fault " + micStyle.Render("●")
	}

	var body strings.Builder
	body.WriteString(" " + titleStyle.Render(title) + "\n\n")
	body.WriteString(" " + label(fieldCustomer, "customer") + choiceStyle.Render("◂ "+customerName+" ▸") + "\n")
	body.WriteString(" " + label(fieldDevice, "device") + choiceStyle.Render("◂ "+string(schema.DeviceTypes[form.deviceIndex])+" ▸") + "\n")
	body.WriteString(" " + label(fieldColor, "color") + form.color.View() + "\n")
	body.WriteString(" " + label(fieldFault, faultLabel) + form.fault.View() + "\n")
	body.WriteString(" " + label(fieldPrice, "price") + form.price.View() + "\n")
	body.WriteString(" " + label(fieldWholesale, "parts cost") + form.wholesale.View() + "\n")

	if form.failure != "" {
		failureStyle := lipgloss.NewStyle().Foreground(form.theme.NoticeError)
		body.WriteString("\n " + failureStyle.Render(form.failure) + "\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(form.theme.HelpText)
	help := "tab next · enter save · esc cancel"
	if form.FaultFocused() {
		help += " · C-v dictate"
	}
	body.WriteString("\n " + helpStyle.Render(help))

	return lipgloss.NewStyle().MaxWidth(width).Render(body.String())
}

// CustomerForm is the create/edit form for a customer record.
type CustomerForm struct {
	theme Theme

	// EditingID is the customer being edited, or empty when creating.
	EditingID string

	name    textinput.Model
	phone   textinput.Model
	address textinput.Model

	focused int

	failure string
}

// NewCustomerForm creates an empty customer form with the name field
// focused.
func NewCustomerForm(theme Theme) *CustomerForm {
	form := &CustomerForm{
		theme:   theme,
		name:    newFormInput("full name", 80),
		phone:   newFormInput("phone", 32),
		address: newFormInput("address", 160),
	}
	form.name.Focus()
	return form
}

// NewCustomerFormEdit creates a form pre-filled from an existing
// customer record.
func NewCustomerFormEdit(theme Theme, customer schema.Customer) *CustomerForm {
	form := NewCustomerForm(theme)
	form.EditingID = customer.ID
	form.name.SetValue(customer.Name)
	form.phone.SetValue(customer.Phone)
	form.address.SetValue(customer.Address)
	return form
}

// SetFailure records a validation or backend failure to display.
func (form *CustomerForm) SetFailure(message string) {
	form.failure = message
}

// Update routes input to the focused field; tab and shift+tab move
// focus.
func (form *CustomerForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			form.focused = (form.focused + 1) % 3
			form.applyFocus()
			return nil
		case "shift+tab", "up":
			form.focused = (form.focused + 2) % 3
			form.applyFocus()
			return nil
		}
	}

	var cmd tea.Cmd
	switch form.focused {
	case 0:
		form.name, cmd = form.name.Update(msg)
	case 1:
		form.phone, cmd = form.phone.Update(msg)
	case 2:
		form.address, cmd = form.address.Update(msg)
	}
	return cmd
}

func (form *CustomerForm) applyFocus() {
	inputs := []*textinput.Model{&form.name, &form.phone, &form.address}
	for index, input := range inputs {
		if index == form.focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// Input validates the form and builds the wire payload.
func (form *CustomerForm) Input() (schema.CustomerInput, error) {
	input := schema.CustomerInput{
		Name:    strings.TrimSpace(form.name.Value()),
		Phone:   strings.TrimSpace(form.phone.Value()),
		Address: strings.TrimSpace(form.address.Value()),
	}
	if input.Name == "" {
		return input, fmt.Errorf("customer name must not be empty")
	}
	if input.Phone == "" {
		return input, fmt.Errorf("customer phone must not be empty")
	}
	return input, nil
}

// View renders the form.
func (form *CustomerForm) View(width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(form.theme.FaintText).Width(10)
	focusedLabel := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true).Width(10)
	titleStyle := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true)

	label := func(field int, text string) string {
		if form.focused == field {
			return focusedLabel.Render(text)
		}
		return labelStyle.Render(text)
	}

	title := "new customer"
	if form.EditingID != "" {
		title = "edit customer"
	}

	var body strings.Builder
	body.WriteString(" " + titleStyle.Render(title) + "\n\n")
	body.WriteString(" " + label(0, "name") + form.name.View() + "\n")
	body.WriteString(" " + label(1, "phone") + form.phone.View() + "\n")
	body.WriteString(" " + label(2, "address") + form.address.View() + "\n")

	if form.failure != "" {
		failureStyle := lipgloss.NewStyle().Foreground(form.theme.NoticeError)
		body.WriteString("\n " + failureStyle.Render(form.failure) + "\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(form.theme.HelpText)
	body.WriteString("\n " + helpStyle.Render("tab next · enter save · esc cancel"))

	return lipgloss.NewStyle().MaxWidth(width).Render(body.String())
}
