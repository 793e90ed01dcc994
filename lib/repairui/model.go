// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/authz"
	"github.com/fixdesk/fixdesk/lib/lifecycle"
	"github.com/fixdesk/fixdesk/lib/schema"
	"github.com/fixdesk/fixdesk/lib/session"
	"github.com/fixdesk/fixdesk/lib/tui"
	"github.com/fixdesk/fixdesk/lib/voice"
)

// Tab identifies which data view is active.
type Tab int

const (
	// TabDashboard shows the shop's aggregate numbers.
	TabDashboard Tab = iota
	// TabRepairs shows the status-grouped repair list with the
	// detail pane.
	TabRepairs
	// TabCustomers shows the customer directory.
	TabCustomers
	// TabTechnicians shows staff accounts. Admin only.
	TabTechnicians
)

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusList means navigation keys move the list cursor.
	FocusList FocusRegion = iota
	// FocusDetail means navigation keys scroll the detail pane.
	FocusDetail
	// FocusFilter means keystrokes go to the filter input.
	FocusFilter
	// FocusDropdown means the status dropdown captures all input.
	FocusDropdown
	// FocusForm means a create/edit form captures all input.
	FocusForm
)

// noticeFadeDelay is how long a status bar notice stays visible.
const noticeFadeDelay = 4 * time.Second

// --- bubbletea messages ---

// hydratedMsg reports the guard's verdict after session restoration.
type hydratedMsg struct {
	state session.State
}

// loginResultMsg reports the outcome of an asynchronous login.
type loginResultMsg struct {
	err error
}

// loggedOutMsg reports that logout finished (always succeeds locally).
type loggedOutMsg struct{}

type repairsLoadedMsg struct {
	repairs []schema.Repair
	err     error
}

type customersLoadedMsg struct {
	customers []schema.Customer
	err       error
}

type techniciansLoadedMsg struct {
	technicians []schema.Technician
	err         error
}

type statsLoadedMsg struct {
	stats  *schema.DashboardStats
	recent []schema.Repair
	err    error
}

// transitionDoneMsg reports a status transition outcome. On success
// the updated repair (the server's authoritative copy) replaces the
// local one.
type transitionDoneMsg struct {
	repair *schema.Repair
	err    error
}

// mutationDoneMsg reports a create/update/delete outcome. The refresh
// field names the tab whose data must be refetched.
type mutationDoneMsg struct {
	notice  string
	refresh Tab
	err     error
}

// noticeFadeMsg clears the status bar notice after a delay.
type noticeFadeMsg struct{}

// dictationMsg delivers one recognized phrase from the transcriber.
// closed reports that the phrase channel ended (process exited).
type dictationMsg struct {
	phrase string
	closed bool
}

// Model is the top-level bubbletea model for the Fixdesk TUI.
type Model struct {
	guard   *session.Guard
	backend Backend
	theme   Theme
	keys    KeyMap

	// Voice input capability, detected once at startup.
	voiceCaps     voice.Capabilities
	voiceLanguage string
	transcriber   *voice.Transcriber
	voicePhrases  <-chan string

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	activeTab Tab
	focus     FocusRegion
	filter    FilterModel
	slab      *util.Slab

	// Fetched data.
	repairs     []schema.Repair
	customers   []schema.Customer
	technicians []schema.Technician
	stats       *schema.DashboardStats
	recent      []schema.Repair

	// Repair list state.
	items        []ListItem
	cursor       int
	scrollOffset int
	collapsed    map[schema.Status]bool
	selectedID   string // Stable focus: track selection by record ID.

	detail DetailPane

	// Customer / technician list cursors.
	customerCursor   int
	technicianCursor int

	login        LoginForm
	repairForm   *RepairForm
	customerForm *CustomerForm
	dropdown     *tui.DropdownOverlay

	// Status bar notice. One notice per action: each new outcome
	// replaces the previous one.
	notice        string
	noticeIsError bool
}

// New creates the TUI model. The guard must not yet be hydrated; Init
// schedules hydration so the loading screen shows while the stored
// token is verified.
func New(guard *session.Guard, backend Backend, voiceCaps voice.Capabilities, voiceLanguage string) Model {
	theme := DefaultTheme
	return Model{
		guard:         guard,
		backend:       backend,
		theme:         theme,
		keys:          DefaultKeyMap,
		voiceCaps:     voiceCaps,
		voiceLanguage: voiceLanguage,
		slab:          tui.NewSlab(),
		collapsed:     make(map[schema.Status]bool),
		detail:        NewDetailPane(theme),
		login:         NewLoginForm(theme),
	}
}

// Init starts session hydration.
func (model Model) Init() tea.Cmd {
	guard := model.guard
	return func() tea.Msg {
		return hydratedMsg{state: guard.Hydrate(context.Background())}
	}
}

// --- data fetch commands ---

func (model Model) loadRepairs() tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		repairs, err := backend.Repairs(context.Background())
		return repairsLoadedMsg{repairs: repairs, err: err}
	}
}

func (model Model) loadCustomers() tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		customers, err := backend.Customers(context.Background())
		return customersLoadedMsg{customers: customers, err: err}
	}
}

func (model Model) loadTechnicians() tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		technicians, err := backend.Technicians(context.Background())
		return techniciansLoadedMsg{technicians: technicians, err: err}
	}
}

func (model Model) loadStats() tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		stats, err := backend.DashboardStats(context.Background())
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		recent, err := backend.RecentRepairs(context.Background())
		if err != nil {
			return statsLoadedMsg{stats: stats, err: err}
		}
		return statsLoadedMsg{stats: stats, recent: recent}
	}
}

// loadForTab returns the fetch command for the given tab, including
// the supporting data it needs (repair forms need customers).
func (model Model) loadForTab(tab Tab) tea.Cmd {
	switch tab {
	case TabDashboard:
		return model.loadStats()
	case TabRepairs:
		return tea.Batch(model.loadRepairs(), model.loadCustomers())
	case TabCustomers:
		return model.loadCustomers()
	case TabTechnicians:
		return model.loadTechnicians()
	}
	return nil
}

func noticeFade() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// listenDictation waits for the next recognized phrase.
func listenDictation(phrases <-chan string) tea.Cmd {
	return func() tea.Msg {
		phrase, open := <-phrases
		if !open {
			return dictationMsg{closed: true}
		}
		return dictationMsg{phrase: phrase}
	}
}

// Update is the bubbletea message dispatcher.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		model.ready = true
		model.detail.SetSize(model.detailWidth(), model.contentHeight())
		return model, nil

	case hydratedMsg:
		if msg.state == session.StateAuthenticated {
			return model, model.loadForTab(model.activeTab)
		}
		return model, nil

	case loginResultMsg:
		if msg.err != nil {
			model.login.SetFailure(msg.err.Error())
			return model, nil
		}
		model.login = NewLoginForm(model.theme)
		return model, model.loadForTab(model.activeTab)

	case loggedOutMsg:
		model.login = NewLoginForm(model.theme)
		model.repairs = nil
		model.customers = nil
		model.technicians = nil
		model.stats = nil
		model.items = nil
		model.detail.SetRepair(nil)
		return model, nil

	case repairsLoadedMsg:
		if msg.err != nil {
			return model.withErrorNotice(msg.err)
		}
		model.repairs = msg.repairs
		model.rebuildList()
		return model, nil

	case customersLoadedMsg:
		if msg.err != nil {
			return model.withErrorNotice(msg.err)
		}
		model.customers = msg.customers
		return model, nil

	case techniciansLoadedMsg:
		if msg.err != nil {
			return model.withErrorNotice(msg.err)
		}
		model.technicians = msg.technicians
		if model.technicianCursor >= len(model.technicians) {
			model.technicianCursor = 0
		}
		return model, nil

	case statsLoadedMsg:
		if msg.err != nil {
			return model.withErrorNotice(msg.err)
		}
		model.stats = msg.stats
		model.recent = msg.recent
		return model, nil

	case transitionDoneMsg:
		if msg.err != nil {
			updated, cmd := model.withErrorNotice(msg.err)
			// A conflict means someone else moved the repair first;
			// the local copy is stale, so refetch immediately.
			if api.IsCategory(msg.err, api.CategoryConflict) {
				return updated, tea.Batch(cmd, updated.(Model).loadRepairs())
			}
			return updated, cmd
		}
		model.replaceRepair(*msg.repair)
		model.rebuildList()
		model.notice = fmt.Sprintf("%s → %s", msg.repair.RepairID, lifecycle.Label(msg.repair.Status))
		model.noticeIsError = false
		return model, noticeFade()

	case mutationDoneMsg:
		if msg.err != nil {
			return model.withErrorNotice(msg.err)
		}
		model.notice = msg.notice
		model.noticeIsError = false
		return model, tea.Batch(noticeFade(), model.loadForTab(msg.refresh))

	case noticeFadeMsg:
		model.notice = ""
		return model, nil

	case dictationMsg:
		if msg.closed {
			model.stopDictation()
			return model, nil
		}
		if model.repairForm != nil {
			model.repairForm.AppendDictation(msg.phrase)
		}
		return model, listenDictation(model.voicePhrases)

	case tea.KeyMsg:
		return model.handleKey(msg)
	}

	return model, nil
}

func (model Model) withErrorNotice(err error) (tea.Model, tea.Cmd) {
	model.notice = string(api.CategoryOf(err)) + ": " + err.Error()
	model.noticeIsError = true
	return model, noticeFade()
}

// handleKey routes a key press based on the guard's verdict and the
// current focus region.
func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	decision := model.guard.Decide()

	// Ctrl+C always quits, regardless of focus.
	if msg.String() == "ctrl+c" {
		model.stopDictation()
		return model, tea.Quit
	}

	switch decision {
	case session.DecisionLoading:
		return model, nil
	case session.DecisionLogin:
		return model.handleLoginKey(msg)
	}

	switch model.focus {
	case FocusDropdown:
		return model.handleDropdownKey(msg)
	case FocusForm:
		return model.handleFormKey(msg)
	case FocusFilter:
		return model.handleFilterKey(msg)
	}

	// List / detail focus: global bindings first.
	switch {
	case key.Matches(msg, model.keys.Quit):
		model.stopDictation()
		return model, tea.Quit

	case key.Matches(msg, model.keys.Logout):
		guard := model.guard
		model.stopDictation()
		return model, func() tea.Msg {
			guard.Logout(context.Background())
			return loggedOutMsg{}
		}

	case key.Matches(msg, model.keys.TabDashboard):
		return model.switchTab(TabDashboard)
	case key.Matches(msg, model.keys.TabRepairs):
		return model.switchTab(TabRepairs)
	case key.Matches(msg, model.keys.TabCustomers):
		return model.switchTab(TabCustomers)
	case key.Matches(msg, model.keys.TabTechnicians):
		return model.switchTab(TabTechnicians)

	case key.Matches(msg, model.keys.Refresh):
		return model, model.loadForTab(model.activeTab)

	case key.Matches(msg, model.keys.FilterActivate):
		if model.activeTab == TabRepairs {
			model.filter.Active = true
			model.focus = FocusFilter
		}
		return model, nil
	}

	switch model.activeTab {
	case TabRepairs:
		return model.handleRepairsKey(msg)
	case TabCustomers:
		return model.handleCustomersKey(msg)
	case TabTechnicians:
		return model.handleTechniciansKey(msg)
	}
	return model, nil
}

func (model Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		// A second enter while the request is in flight must not fire
		// a duplicate login.
		if model.login.Submitting() {
			return model, nil
		}
		if !model.login.Ready() {
			model.login.SetFailure("enter a username and password")
			return model, nil
		}
		username, password := model.login.Values()
		model.login.SetSubmitting(true)
		guard := model.guard
		return model, func() tea.Msg {
			return loginResultMsg{err: guard.Login(context.Background(), username, password)}
		}
	}
	cmd := model.login.Update(msg)
	return model, cmd
}

func (model Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		model.filter.Clear()
		model.focus = FocusList
		model.rebuildList()
		return model, nil
	case "enter":
		model.filter.Active = false
		model.focus = FocusList
		return model, nil
	case "backspace":
		if model.filter.HandleBackspace() {
			model.rebuildList()
		}
		return model, nil
	}
	if len(msg.Runes) == 1 {
		model.filter.HandleRune(msg.Runes[0])
		model.rebuildList()
	}
	return model, nil
}

func (model Model) handleDropdownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.dropdown == nil {
		model.focus = FocusList
		return model, nil
	}
	switch {
	case key.Matches(msg, model.keys.Up):
		model.dropdown.MoveUp()
	case key.Matches(msg, model.keys.Down):
		model.dropdown.MoveDown()
	case msg.String() == "esc":
		model.dropdown = nil
		model.focus = FocusList
	case msg.String() == "enter":
		selected := model.dropdown.Selected()
		repairID := model.dropdown.ItemID
		model.dropdown = nil
		model.focus = FocusList
		return model, model.requestTransition(repairID, schema.Status(selected.Value))
	}
	return model, nil
}

// requestTransition validates the move locally and only then calls
// the backend. An illegal target never leaves the process.
func (model Model) requestTransition(repairID string, target schema.Status) tea.Cmd {
	repair := model.findRepair(repairID)
	if repair == nil {
		return nil
	}
	backend := model.backend
	snapshot := *repair
	return func() tea.Msg {
		updated, err := lifecycle.RequestTransition(context.Background(), backend, &snapshot, target)
		return transitionDoneMsg{repair: updated, err: err}
	}
}

func (model Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		model.stopDictation()
		model.repairForm = nil
		model.customerForm = nil
		model.focus = FocusList
		return model, nil
	}

	if model.repairForm != nil {
		if key.Matches(msg, model.keys.Voice) && model.repairForm.FaultFocused() {
			return model.toggleDictation()
		}
		if msg.String() == "enter" {
			return model.submitRepairForm()
		}
		cmd := model.repairForm.Update(msg)
		return model, cmd
	}

	if model.customerForm != nil {
		if msg.String() == "enter" {
			return model.submitCustomerForm()
		}
		cmd := model.customerForm.Update(msg)
		return model, cmd
	}

	model.focus = FocusList
	return model, nil
}

func (model Model) submitRepairForm() (tea.Model, tea.Cmd) {
	form := model.repairForm
	input, err := form.Input()
	if err != nil {
		form.SetFailure(err.Error())
		return model, nil
	}

	model.stopDictation()
	model.repairForm = nil
	model.focus = FocusList
	backend := model.backend

	if form.EditingID != "" {
		id := form.EditingID
		return model, func() tea.Msg {
			updated, err := backend.UpdateRepair(context.Background(), id, input)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{notice: updated.RepairID + " updated", refresh: TabRepairs}
		}
	}
	return model, func() tea.Msg {
		created, err := backend.CreateRepair(context.Background(), input)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: created.RepairID + " received", refresh: TabRepairs}
	}
}

func (model Model) submitCustomerForm() (tea.Model, tea.Cmd) {
	form := model.customerForm
	input, err := form.Input()
	if err != nil {
		form.SetFailure(err.Error())
		return model, nil
	}

	editingID := form.EditingID
	model.customerForm = nil
	model.focus = FocusList
	backend := model.backend

	if editingID != "" {
		return model, func() tea.Msg {
			updated, err := backend.UpdateCustomer(context.Background(), editingID, input)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{notice: updated.Name + " updated", refresh: TabCustomers}
		}
	}
	return model, func() tea.Msg {
		created, err := backend.CreateCustomer(context.Background(), input)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: created.Name + " added", refresh: TabCustomers}
	}
}

func (model Model) handleRepairsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}
		return model, nil

	case key.Matches(msg, model.keys.Up):
		if model.focus == FocusDetail {
			model.detail.ScrollBy(-1)
		} else {
			model.moveCursor(-1)
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.focus == FocusDetail {
			model.detail.ScrollBy(1)
		} else {
			model.moveCursor(1)
		}
		return model, nil
	case key.Matches(msg, model.keys.PageUp):
		if model.focus == FocusDetail {
			model.detail.ScrollBy(-model.contentHeight() / 2)
		} else {
			model.moveCursor(-model.contentHeight() / 2)
		}
		return model, nil
	case key.Matches(msg, model.keys.PageDown):
		if model.focus == FocusDetail {
			model.detail.ScrollBy(model.contentHeight() / 2)
		} else {
			model.moveCursor(model.contentHeight() / 2)
		}
		return model, nil
	case key.Matches(msg, model.keys.Home):
		if model.focus == FocusDetail {
			model.detail.ScrollToTop()
		} else {
			model.cursor = 0
			model.syncSelection()
		}
		return model, nil
	case key.Matches(msg, model.keys.End):
		if model.focus == FocusDetail {
			model.detail.ScrollToBottom()
		} else if len(model.items) > 0 {
			model.cursor = len(model.items) - 1
			model.syncSelection()
		}
		return model, nil

	case msg.String() == "enter", msg.String() == " ":
		// Toggle group collapse on a header row.
		if item := model.currentItem(); item != nil && item.IsHeader {
			model.collapsed[item.GroupStatus] = !model.collapsed[item.GroupStatus]
			model.rebuildList()
		}
		return model, nil

	case key.Matches(msg, model.keys.Transition):
		return model.openStatusDropdown()

	case key.Matches(msg, model.keys.New):
		if !model.guard.Authorize(authz.Receive, authz.Add) {
			return model.permissionNotice()
		}
		model.repairForm = NewRepairForm(model.theme, model.customers)
		model.focus = FocusForm
		return model, nil

	case key.Matches(msg, model.keys.Edit):
		if !model.guard.Authorize(authz.Edit) {
			return model.permissionNotice()
		}
		if repair := model.selectedRepair(); repair != nil {
			model.repairForm = NewRepairFormEdit(model.theme, model.customers, *repair)
			model.focus = FocusForm
		}
		return model, nil

	case key.Matches(msg, model.keys.Delete):
		if !model.guard.Authorize(authz.Delete) {
			return model.permissionNotice()
		}
		if repair := model.selectedRepair(); repair != nil {
			backend := model.backend
			id, label := repair.ID, repair.RepairID
			return model, func() tea.Msg {
				if err := backend.DeleteRepair(context.Background(), id); err != nil {
					return mutationDoneMsg{err: err}
				}
				return mutationDoneMsg{notice: label + " deleted", refresh: TabRepairs}
			}
		}
		return model, nil
	}
	return model, nil
}

// openStatusDropdown builds the transition menu for the selected
// repair. The options come from the lifecycle table, so a terminal
// repair simply gets a notice instead of a menu.
func (model Model) openStatusDropdown() (tea.Model, tea.Cmd) {
	repair := model.selectedRepair()
	if repair == nil {
		return model, nil
	}
	if !model.guard.Authorize(authz.Edit) {
		return model.permissionNotice()
	}

	targets := lifecycle.Next(repair.Status)
	if len(targets) == 0 {
		model.notice = fmt.Sprintf("%s is %s; no further moves", repair.RepairID, repair.Status)
		model.noticeIsError = true
		return model, noticeFade()
	}

	options := make([]tui.DropdownOption, len(targets))
	for index, target := range targets {
		options[index] = tui.DropdownOption{
			Label: lifecycle.ActionLabel(target),
			Value: string(target),
		}
	}
	model.dropdown = &tui.DropdownOverlay{
		Options: options,
		AnchorX: model.listWidth() / 2,
		AnchorY: model.cursorScreenRow(),
		ItemID:  repair.ID,
	}
	model.focus = FocusDropdown
	return model, nil
}

func (model Model) handleCustomersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Up):
		if model.customerCursor > 0 {
			model.customerCursor--
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.customerCursor < len(model.customers)-1 {
			model.customerCursor++
		}
		return model, nil

	case key.Matches(msg, model.keys.New):
		if !model.guard.Authorize(authz.Add) {
			return model.permissionNotice()
		}
		model.customerForm = NewCustomerForm(model.theme)
		model.focus = FocusForm
		return model, nil

	case key.Matches(msg, model.keys.Edit):
		if !model.guard.Authorize(authz.Edit) {
			return model.permissionNotice()
		}
		if model.customerCursor < len(model.customers) {
			model.customerForm = NewCustomerFormEdit(model.theme, model.customers[model.customerCursor])
			model.focus = FocusForm
		}
		return model, nil

	case key.Matches(msg, model.keys.Delete):
		if !model.guard.Authorize(authz.Delete) {
			return model.permissionNotice()
		}
		if model.customerCursor < len(model.customers) {
			customer := model.customers[model.customerCursor]
			backend := model.backend
			return model, func() tea.Msg {
				if err := backend.DeleteCustomer(context.Background(), customer.ID); err != nil {
					return mutationDoneMsg{err: err}
				}
				return mutationDoneMsg{notice: customer.Name + " deleted", refresh: TabCustomers}
			}
		}
		return model, nil
	}
	return model, nil
}

func (model Model) handleTechniciansKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Up):
		if model.technicianCursor > 0 {
			model.technicianCursor--
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.technicianCursor < len(model.technicians)-1 {
			model.technicianCursor++
		}
		return model, nil

	case key.Matches(msg, model.keys.ToggleActive):
		// The view already refuses to render this tab for non-admins,
		// but the key handler must hold the same line: the backend
		// call never fires for a staff account.
		if user := model.guard.CurrentUser(); user == nil || !user.IsAdmin {
			return model.permissionNotice()
		}
		if model.technicianCursor < len(model.technicians) {
			technician := model.technicians[model.technicianCursor]
			backend := model.backend
			return model, func() tea.Msg {
				updated, err := backend.SetTechnicianActive(
					context.Background(), technician.ID, !technician.Active)
				if err != nil {
					return mutationDoneMsg{err: err}
				}
				state := "deactivated"
				if updated.Active {
					state = "activated"
				}
				return mutationDoneMsg{notice: updated.Name + " " + state, refresh: TabTechnicians}
			}
		}
		return model, nil
	}
	return model, nil
}

// --- dictation ---

// toggleDictation starts or stops the external transcriber.
func (model Model) toggleDictation() (tea.Model, tea.Cmd) {
	if model.transcriber != nil {
		model.stopDictation()
		return model, nil
	}
	if !model.voiceCaps.Available {
		model.notice = "no speech transcriber found"
		model.noticeIsError = true
		return model, noticeFade()
	}

	transcriber := voice.NewTranscriber(model.voiceCaps.Command, model.voiceLanguage)
	phrases, err := transcriber.Start(context.Background())
	if err != nil {
		model.notice = "dictation failed: " + err.Error()
		model.noticeIsError = true
		return model, noticeFade()
	}
	model.transcriber = transcriber
	model.voicePhrases = phrases
	if model.repairForm != nil {
		model.repairForm.VoiceActive = true
	}
	return model, listenDictation(phrases)
}

func (model *Model) stopDictation() {
	if model.transcriber != nil {
		model.transcriber.Stop()
		model.transcriber = nil
		model.voicePhrases = nil
	}
	if model.repairForm != nil {
		model.repairForm.VoiceActive = false
	}
}

// --- list bookkeeping ---

func (model *Model) switchTabValue(tab Tab) {
	model.activeTab = tab
	model.focus = FocusList
	model.dropdown = nil
}

func (model Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	model.switchTabValue(tab)
	return model, model.loadForTab(tab)
}

// rebuildList recomputes the list from the fetched repairs and the
// active filter, then restores the cursor to the previously selected
// repair when it survived the rebuild. Without a filter the list is
// grouped by status; with one it becomes a flat, score-ranked fuzzy
// match result, since score order and group order cannot both hold.
func (model *Model) rebuildList() {
	if model.filter.Input != "" {
		scored := model.filter.ApplyFuzzy(model.repairs, model.slab)
		items := make([]ListItem, 0, len(scored))
		for _, match := range scored {
			items = append(items, ListItem{
				Repair:         match.Repair,
				MatchPositions: match.Positions,
			})
		}
		model.items = items
	} else {
		model.items = BuildListItems(model.repairs, model.collapsed)
	}

	if model.selectedID != "" {
		for index, item := range model.items {
			if !item.IsHeader && item.Repair.ID == model.selectedID {
				model.cursor = index
				break
			}
		}
	}
	if model.cursor >= len(model.items) {
		model.cursor = len(model.items) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.syncSelection()
}

func (model *Model) moveCursor(delta int) {
	if len(model.items) == 0 {
		return
	}
	model.cursor += delta
	if model.cursor < 0 {
		model.cursor = 0
	}
	if model.cursor >= len(model.items) {
		model.cursor = len(model.items) - 1
	}
	model.syncSelection()
}

// syncSelection records the selected repair ID, updates the detail
// pane, and keeps the cursor visible within the scroll window.
func (model *Model) syncSelection() {
	if item := model.currentItem(); item != nil && !item.IsHeader {
		model.selectedID = item.Repair.ID
		repair := item.Repair
		model.detail.SetSize(model.detailWidth(), model.contentHeight())
		model.detail.SetRepair(&repair)
	} else {
		model.detail.SetRepair(nil)
	}

	height := model.contentHeight()
	if height <= 0 {
		return
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
}

func (model *Model) currentItem() *ListItem {
	if model.cursor < 0 || model.cursor >= len(model.items) {
		return nil
	}
	return &model.items[model.cursor]
}

func (model *Model) selectedRepair() *schema.Repair {
	if item := model.currentItem(); item != nil && !item.IsHeader {
		repair := item.Repair
		return &repair
	}
	return nil
}

func (model *Model) findRepair(id string) *schema.Repair {
	for index := range model.repairs {
		if model.repairs[index].ID == id {
			return &model.repairs[index]
		}
	}
	return nil
}

// replaceRepair swaps the server's updated copy into the local slice.
func (model *Model) replaceRepair(updated schema.Repair) {
	for index := range model.repairs {
		if model.repairs[index].ID == updated.ID {
			model.repairs[index] = updated
			return
		}
	}
}

func (model Model) permissionNotice() (tea.Model, tea.Cmd) {
	model.notice = "your account does not have permission for that"
	model.noticeIsError = true
	return model, noticeFade()
}

// --- layout ---

func (model Model) listWidth() int {
	if model.activeTab != TabRepairs {
		return model.width
	}
	return model.width * 55 / 100
}

func (model Model) detailWidth() int {
	return model.width - model.listWidth() - 1
}

// contentHeight is the rows available between the tab bar and the
// status bar, minus the filter line when visible.
func (model Model) contentHeight() int {
	height := model.height - 2
	if model.filter.Active || model.filter.Input != "" {
		height--
	}
	if height < 1 {
		height = 1
	}
	return height
}

// cursorScreenRow converts the cursor's list index to a screen row
// for anchoring the dropdown overlay.
func (model Model) cursorScreenRow() int {
	row := 1 + model.cursor - model.scrollOffset
	if model.filter.Active || model.filter.Input != "" {
		row++
	}
	if row < 1 {
		row = 1
	}
	return row
}

// --- view ---

// View renders the whole screen according to the guard's verdict.
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	switch model.guard.Decide() {
	case session.DecisionLoading:
		return model.loadingView()
	case session.DecisionLogin:
		return model.login.View(model.width, model.height)
	}

	if model.focus == FocusForm {
		return model.formView()
	}

	var body string
	switch model.activeTab {
	case TabDashboard:
		body = renderDashboard(model.theme, model.stats, model.recent, model.width, model.contentHeight())
	case TabRepairs:
		body = model.repairsView()
	case TabCustomers:
		body = model.customersView()
	case TabTechnicians:
		body = model.techniciansView()
	}

	view := model.tabBar() + "\n" + model.padBody(body) + "\n" + model.statusBar()

	if model.dropdown != nil {
		view = tui.SpliceOverlay(view, model.dropdown.Render(model.theme), model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	return view
}

func (model Model) loadingView() string {
	message := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render("restoring session…")
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, message)
}

func (model Model) formView() string {
	var body string
	if model.repairForm != nil {
		body = model.repairForm.View(model.width)
	} else if model.customerForm != nil {
		body = model.customerForm.View(model.width)
	}
	return model.tabBar() + "\n" + model.padBody(body) + "\n" + model.statusBar()
}

// padBody pads or trims the body to exactly contentHeight lines so
// the status bar always sits on the last row.
func (model Model) padBody(body string) string {
	height := model.contentHeight()
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (model Model) tabBar() string {
	names := []string{"1 dashboard", "2 repairs", "3 customers", "4 technicians"}
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	var parts []string
	for index, name := range names {
		if Tab(index) == model.activeTab {
			parts = append(parts, activeStyle.Render(name))
		} else {
			parts = append(parts, inactiveStyle.Render(name))
		}
	}

	bar := " " + strings.Join(parts, "  ")
	if user := model.guard.CurrentUser(); user != nil {
		who := inactiveStyle.Render(user.Name)
		gap := model.width - lipgloss.Width(bar) - lipgloss.Width(who) - 1
		if gap > 0 {
			bar += strings.Repeat(" ", gap) + who
		}
	}
	return lipgloss.NewStyle().Width(model.width).MaxWidth(model.width).Render(bar)
}

func (model Model) statusBar() string {
	if model.notice != "" {
		color := model.theme.NoticeSuccess
		if model.noticeIsError {
			color = model.theme.NoticeError
		}
		return lipgloss.NewStyle().
			Foreground(color).
			Width(model.width).
			MaxWidth(model.width).
			Render(" " + model.notice)
	}

	help := " j/k move · tab pane · / filter · s status · n new · r refresh · C-x log out · q quit"
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Width(model.width).
		MaxWidth(model.width).
		Render(help)
}

func (model Model) repairsView() string {
	listWidth := model.listWidth()
	height := model.contentHeight()
	renderer := NewListRenderer(model.theme, listWidth)

	var rows []string
	if filterBar := model.filter.View(model.theme, listWidth); filterBar != "" {
		rows = append(rows, filterBar)
	}

	end := model.scrollOffset + height
	if end > len(model.items) {
		end = len(model.items)
	}
	for index := model.scrollOffset; index < end; index++ {
		item := model.items[index]
		selected := index == model.cursor && model.focus != FocusDetail
		if item.IsHeader {
			rows = append(rows, renderer.RenderGroupHeader(item, selected))
		} else {
			rows = append(rows, renderer.RenderRow(item.Repair, selected))
		}
	}
	if len(model.items) == 0 {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(" no repairs"))
	}

	left := strings.Join(rows, "\n")
	leftBlock := lipgloss.NewStyle().
		Width(listWidth).
		MaxWidth(listWidth).
		Height(height).
		Render(left)

	divider := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))

	model.detail.SetSize(model.detailWidth(), height)
	right := model.detail.View(model.focus == FocusDetail)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, divider, right)
}

func (model Model) customersView() string {
	nameStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(24)
	phoneStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(16)
	addressStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var rows []string
	for index, customer := range model.customers {
		row := " " + nameStyle.Render(truncateString(customer.Name, 23)) +
			phoneStyle.Render(customer.Phone) +
			addressStyle.Render(truncateString(customer.Address, 40))
		if index == model.customerCursor {
			row = selectedStyle.Width(model.width).MaxWidth(model.width).Render(
				" " + customer.Name + "  " + customer.Phone + "  " + customer.Address)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(" no customers"))
	}
	return strings.Join(rows, "\n")
}

func (model Model) techniciansView() string {
	// Staff management is for the owner only; the render policy shows
	// a notice rather than an empty screen.
	user := model.guard.CurrentUser()
	if user == nil || !user.IsAdmin {
		return lipgloss.NewStyle().
			Foreground(model.theme.NoticeError).
			Render(" staff management requires an administrator account")
	}

	nameStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(22)
	userStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(14)
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var rows []string
	for index, technician := range model.technicians {
		active := lipgloss.NewStyle().Foreground(model.theme.StatusCompleted).Render("active")
		if !technician.Active {
			active = lipgloss.NewStyle().Foreground(model.theme.NoticeError).Render("inactive")
		}

		var grants []string
		for _, permission := range authz.Permissions {
			if authz.Holds(&technician, permission) {
				grants = append(grants, permission.Short())
			}
		}
		if technician.IsAdmin {
			grants = append(grants, "admin")
		}

		row := " " + nameStyle.Render(truncateString(technician.Name, 21)) +
			userStyle.Render(technician.Username) +
			active + "  " +
			lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(strings.Join(grants, " "))
		if index == model.technicianCursor {
			row = selectedStyle.Width(model.width).MaxWidth(model.width).Render(row)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(" no technicians"))
	}
	return strings.Join(rows, "\n")
}
