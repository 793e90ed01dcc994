// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/schema"
	"github.com/fixdesk/fixdesk/lib/session"
	"github.com/fixdesk/fixdesk/lib/voice"
)

// fakeShop implements both the Backend interface and the guard's
// AuthAPI against in-memory data, recording status calls so tests can
// assert which mutations reached the "network".
type fakeShop struct {
	repairs     []schema.Repair
	recent      []schema.Repair
	customers   []schema.Customer
	technicians []schema.Technician
	stats       schema.DashboardStats

	technician schema.Technician
	validToken string
	token      func() string

	statusCalls []schema.Status
	statusErr   error

	loginCalls  int
	activeCalls int
}

func (fake *fakeShop) Login(_ context.Context, username, password string) (string, *schema.Technician, error) {
	fake.loginCalls++
	if username != fake.technician.Username || password != "secret123" {
		return "", nil, api.InvalidCredentials("wrong username or password")
	}
	profile := fake.technician
	return fake.validToken, &profile, nil
}

func (fake *fakeShop) Logout(context.Context) error { return nil }

func (fake *fakeShop) Me(context.Context) (*schema.Technician, error) {
	if fake.token() != fake.validToken {
		return nil, api.PermissionDenied("invalid session")
	}
	profile := fake.technician
	return &profile, nil
}

func (fake *fakeShop) Repairs(context.Context) ([]schema.Repair, error) {
	return fake.repairs, nil
}

func (fake *fakeShop) RecentRepairs(context.Context) ([]schema.Repair, error) {
	return fake.recent, nil
}

func (fake *fakeShop) CreateRepair(_ context.Context, input schema.RepairInput) (*schema.Repair, error) {
	repair := schema.Repair{
		ID:         "new",
		RepairID:   "R-2000",
		DeviceType: input.DeviceType,
		Fault:      input.Fault,
		Price:      input.Price,
		Status:     schema.StatusPending,
	}
	fake.repairs = append(fake.repairs, repair)
	return &repair, nil
}

func (fake *fakeShop) UpdateRepair(_ context.Context, id string, input schema.RepairInput) (*schema.Repair, error) {
	for index := range fake.repairs {
		if fake.repairs[index].ID == id {
			fake.repairs[index].Fault = input.Fault
			fake.repairs[index].Price = input.Price
			return &fake.repairs[index], nil
		}
	}
	return nil, api.NotFound("repair %s not found", id)
}

func (fake *fakeShop) UpdateRepairStatus(_ context.Context, id string, status schema.Status) (*schema.Repair, error) {
	fake.statusCalls = append(fake.statusCalls, status)
	if fake.statusErr != nil {
		return nil, fake.statusErr
	}
	for index := range fake.repairs {
		if fake.repairs[index].ID == id {
			updated := fake.repairs[index]
			updated.Status = status
			return &updated, nil
		}
	}
	return nil, api.NotFound("repair %s not found", id)
}

func (fake *fakeShop) DeleteRepair(_ context.Context, id string) error { return nil }

func (fake *fakeShop) Customers(context.Context) ([]schema.Customer, error) {
	return fake.customers, nil
}

func (fake *fakeShop) CreateCustomer(_ context.Context, input schema.CustomerInput) (*schema.Customer, error) {
	customer := schema.Customer{ID: "c-new", Name: input.Name, Phone: input.Phone}
	fake.customers = append(fake.customers, customer)
	return &customer, nil
}

func (fake *fakeShop) UpdateCustomer(_ context.Context, id string, input schema.CustomerInput) (*schema.Customer, error) {
	for index := range fake.customers {
		if fake.customers[index].ID == id {
			fake.customers[index].Name = input.Name
			fake.customers[index].Phone = input.Phone
			fake.customers[index].Address = input.Address
			return &fake.customers[index], nil
		}
	}
	return nil, api.NotFound("customer %s not found", id)
}

func (fake *fakeShop) DeleteCustomer(context.Context, string) error { return nil }

func (fake *fakeShop) Technicians(context.Context) ([]schema.Technician, error) {
	return fake.technicians, nil
}

func (fake *fakeShop) SetTechnicianActive(_ context.Context, id string, active bool) (*schema.Technician, error) {
	fake.activeCalls++
	for index := range fake.technicians {
		if fake.technicians[index].ID == id {
			fake.technicians[index].Active = active
			return &fake.technicians[index], nil
		}
	}
	return nil, api.NotFound("technician %s not found", id)
}

func (fake *fakeShop) DashboardStats(context.Context) (*schema.DashboardStats, error) {
	stats := fake.stats
	return &stats, nil
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		repairs:    sampleRepairs(),
		validToken: "tok-live",
		technician: schema.Technician{
			ID:         "t1",
			Name:       "Tech One",
			Username:   "tech1",
			Active:     true,
			CanReceive: true,
			CanAdd:     true,
			CanEdit:    true,
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestModel builds a model over a fresh anonymous guard.
func newTestModel(t *testing.T, fake *fakeShop) Model {
	t.Helper()
	guard := session.NewGuard(session.NewTokenStore(filepath.Join(t.TempDir(), "token")), quietLogger())
	fake.token = guard.Token
	guard.UseClient(fake)

	model := New(guard, fake, voice.Capabilities{}, "en-US")
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

// newAuthedModel hydrates and logs the model's guard in.
func newAuthedModel(t *testing.T, fake *fakeShop) Model {
	t.Helper()
	model := newTestModel(t, fake)
	model.guard.Hydrate(context.Background())
	if err := model.guard.Login(context.Background(), "tech1", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Load repairs the way the event loop would.
	msg := model.loadRepairs()()
	updated, _ := model.Update(msg)
	return updated.(Model)
}

func TestViewShowsLoadingBeforeHydration(t *testing.T) {
	model := newTestModel(t, newFakeShop())
	if view := model.View(); !strings.Contains(view, "restoring session") {
		t.Error("pre-hydration view should show the loading screen")
	}
}

func TestViewShowsLoginWhenAnonymous(t *testing.T) {
	model := newTestModel(t, newFakeShop())
	model.guard.Hydrate(context.Background())
	if view := model.View(); !strings.Contains(view, "Fixdesk") {
		t.Error("anonymous view should show the login form")
	}
}

func TestViewShowsTabsWhenAuthenticated(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	view := model.View()
	if !strings.Contains(view, "repairs") || !strings.Contains(view, "dashboard") {
		t.Error("authenticated view should show the tab bar")
	}
	if !strings.Contains(view, "Tech One") {
		t.Error("tab bar should show the signed-in technician")
	}
}

func TestRepairsLoadedBuildsGroupedList(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	if len(model.items) == 0 {
		t.Fatal("list should have items after load")
	}
	if !model.items[0].IsHeader || model.items[0].GroupStatus != schema.StatusPending {
		t.Errorf("first item = %+v, want pending group header", model.items[0])
	}
}

func TestDropdownOptionsFollowLifecycle(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	model.activeTab = TabRepairs
	model.moveCursor(1) // header -> first pending repair

	updated, _ := model.openStatusDropdown()
	model = updated.(Model)
	if model.dropdown == nil {
		t.Fatal("dropdown should open for a pending repair")
	}

	var values []string
	for _, option := range model.dropdown.Options {
		values = append(values, option.Value)
	}
	if len(values) != 2 || values[0] != "in-progress" || values[1] != "cancelled" {
		t.Errorf("dropdown values = %v, want [in-progress cancelled]", values)
	}
	if model.dropdown.Options[0].Label != "Start repair" {
		t.Errorf("label = %q, want Start repair", model.dropdown.Options[0].Label)
	}
}

func TestTerminalRepairGetsNoDropdown(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	// Move to the delivered repair (last row).
	model.cursor = len(model.items) - 1
	model.syncSelection()

	updated, _ := model.openStatusDropdown()
	model = updated.(Model)
	if model.dropdown != nil {
		t.Error("terminal repair should not open a dropdown")
	}
	if model.notice == "" {
		t.Error("terminal repair should explain why no moves exist")
	}
}

func TestIllegalTransitionNeverReachesBackend(t *testing.T) {
	fake := newFakeShop()
	model := newAuthedModel(t, fake)

	// r1 is pending; completed is not reachable from pending.
	msg := model.requestTransition("r1", schema.StatusCompleted)()
	result, ok := msg.(transitionDoneMsg)
	if !ok {
		t.Fatalf("message type %T", msg)
	}
	if !api.IsCategory(result.err, api.CategoryIllegalTransition) {
		t.Errorf("category = %s, want illegal_transition", api.CategoryOf(result.err))
	}
	if len(fake.statusCalls) != 0 {
		t.Errorf("backend was called %d times for an illegal transition", len(fake.statusCalls))
	}
}

func TestTransitionSuccessReplacesLocalRepair(t *testing.T) {
	fake := newFakeShop()
	model := newAuthedModel(t, fake)

	msg := model.requestTransition("r1", schema.StatusInProgress)()
	updated, _ := model.Update(msg)
	model = updated.(Model)

	if len(fake.statusCalls) != 1 || fake.statusCalls[0] != schema.StatusInProgress {
		t.Errorf("status calls = %v, want one in-progress", fake.statusCalls)
	}
	if repair := model.findRepair("r1"); repair == nil || repair.Status != schema.StatusInProgress {
		t.Error("local repair should carry the server's updated status")
	}
	if model.notice == "" || model.noticeIsError {
		t.Errorf("success notice missing: %q (error=%v)", model.notice, model.noticeIsError)
	}
}

func TestConflictLeavesLocalStateAndRefetches(t *testing.T) {
	fake := newFakeShop()
	fake.statusErr = api.Conflict("repair was updated by someone else")
	model := newAuthedModel(t, fake)

	msg := model.requestTransition("r1", schema.StatusInProgress)()
	updated, cmd := model.Update(msg)
	model = updated.(Model)

	if repair := model.findRepair("r1"); repair.Status != schema.StatusPending {
		t.Error("conflict must leave the local repair unchanged")
	}
	if !model.noticeIsError {
		t.Error("conflict should surface as an error notice")
	}
	if cmd == nil {
		t.Error("conflict should schedule a refetch")
	}
}

func TestFilterSwitchesToFuzzyRankedList(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	model.filter.Input = "battery"
	model.rebuildList()

	if len(model.items) != 1 {
		t.Fatalf("items = %d, want 1 fuzzy match", len(model.items))
	}
	if model.items[0].IsHeader {
		t.Error("fuzzy results should be a flat list without group headers")
	}
	if model.items[0].Repair.ID != "r2" {
		t.Errorf("match = %s, want r2", model.items[0].Repair.ID)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	model.guard.Logout(context.Background())
	updated, _ := model.Update(loggedOutMsg{})
	model = updated.(Model)

	if model.repairs != nil || model.stats != nil {
		t.Error("logout must clear fetched data")
	}
	if view := model.View(); !strings.Contains(view, "Fixdesk") {
		t.Error("post-logout view should return to the login form")
	}
}

func TestDashboardFetchesRecentRepairs(t *testing.T) {
	fake := newFakeShop()
	fake.recent = []schema.Repair{{ID: "r-recent", RepairID: "R-1099", Status: schema.StatusPending}}
	model := newAuthedModel(t, fake)

	msg := model.loadStats()()
	updated, _ := model.Update(msg)
	model = updated.(Model)

	if len(model.recent) != 1 || model.recent[0].ID != "r-recent" {
		t.Errorf("recent = %+v, want the dedicated recent slice, not the full list", model.recent)
	}
}

func TestTechnicianToggleRequiresAdmin(t *testing.T) {
	fake := newFakeShop()
	fake.technicians = []schema.Technician{{ID: "t2", Name: "Other", Username: "other", Active: true}}
	model := newAuthedModel(t, fake) // tech1 is not an admin
	model.technicians = fake.technicians
	model.activeTab = TabTechnicians

	updated, cmd := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	model = updated.(Model)
	if cmd != nil {
		cmd()
	}

	if fake.activeCalls != 0 {
		t.Errorf("backend was called %d times for a non-admin toggle", fake.activeCalls)
	}
	if !fake.technicians[0].Active {
		t.Error("technician was deactivated by a non-admin")
	}
	if !model.noticeIsError {
		t.Error("non-admin toggle should surface a permission notice")
	}
}

func TestTechnicianToggleAsAdmin(t *testing.T) {
	fake := newFakeShop()
	fake.technician.IsAdmin = true
	fake.technicians = []schema.Technician{{ID: "t2", Name: "Other", Username: "other", Active: true}}
	model := newAuthedModel(t, fake)
	model.technicians = fake.technicians
	model.activeTab = TabTechnicians

	_, cmd := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if cmd == nil {
		t.Fatal("admin toggle should issue the backend call")
	}
	cmd()

	if fake.activeCalls != 1 {
		t.Errorf("backend calls = %d, want 1", fake.activeCalls)
	}
	if fake.technicians[0].Active {
		t.Error("toggle should deactivate the active technician")
	}
}

func TestSecondEnterWhileLoginInFlight(t *testing.T) {
	fake := newFakeShop()
	model := newTestModel(t, fake)
	model.guard.Hydrate(context.Background())

	model.login.username.SetValue("tech1")
	model.login.password.SetValue("secret123")

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	updated, first := model.handleKey(enter)
	model = updated.(Model)
	if first == nil {
		t.Fatal("first enter should submit the login")
	}

	_, second := model.handleKey(enter)
	if second != nil {
		t.Error("enter during an in-flight login must not submit again")
	}

	first()
	if fake.loginCalls != 1 {
		t.Errorf("login calls = %d, want 1", fake.loginCalls)
	}
}

func TestCustomerEditSendsUpdate(t *testing.T) {
	fake := newFakeShop()
	fake.customers = []schema.Customer{{ID: "c1", Name: "Sara Hassan", Phone: "0100111222"}}
	model := newAuthedModel(t, fake)
	model.customers = fake.customers
	model.activeTab = TabCustomers

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	model = updated.(Model)
	if model.customerForm == nil || model.customerForm.EditingID != "c1" {
		t.Fatal("edit key should open the form over the selected customer")
	}

	model.customerForm.phone.SetValue("0100999888")
	updated, cmd := model.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if cmd == nil {
		t.Fatal("submitting the edit form should issue the backend call")
	}

	msg, ok := cmd().(mutationDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("mutation result = %+v", msg)
	}
	if fake.customers[0].Phone != "0100999888" {
		t.Errorf("phone = %q, update never reached the backend", fake.customers[0].Phone)
	}
	if !strings.Contains(msg.notice, "updated") {
		t.Errorf("notice = %q", msg.notice)
	}
}

func TestDictationAppendsToFaultField(t *testing.T) {
	model := newAuthedModel(t, newFakeShop())
	model.repairForm = NewRepairForm(model.theme, model.customers)
	model.focus = FocusForm

	updated, _ := model.Update(dictationMsg{phrase: "screen cracked"})
	model = updated.(Model)
	updated, _ = model.Update(dictationMsg{phrase: "battery swollen"})
	model = updated.(Model)

	input := model.repairForm.fault.Value()
	if input != "screen cracked battery swollen" {
		t.Errorf("fault = %q", input)
	}
}
