// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// fakeUpdater records status-update calls and returns a canned
// response, standing in for the API client.
type fakeUpdater struct {
	calls    []schema.Status
	response *schema.Repair
	err      error
}

func (fake *fakeUpdater) UpdateRepairStatus(_ context.Context, id string, status schema.Status) (*schema.Repair, error) {
	fake.calls = append(fake.calls, status)
	if fake.err != nil {
		return nil, fake.err
	}
	return fake.response, nil
}

func TestTransitionTable(t *testing.T) {
	legal := []struct {
		from, to schema.Status
	}{
		{schema.StatusPending, schema.StatusInProgress},
		{schema.StatusPending, schema.StatusCancelled},
		{schema.StatusInProgress, schema.StatusCompleted},
		{schema.StatusInProgress, schema.StatusCancelled},
		{schema.StatusCompleted, schema.StatusDelivered},
		{schema.StatusCompleted, schema.StatusCancelled},
	}
	allowed := make(map[[2]schema.Status]bool)
	for _, move := range legal {
		allowed[[2]schema.Status{move.from, move.to}] = true
		if !Can(move.from, move.to) {
			t.Errorf("Can(%s, %s) = false, want true", move.from, move.to)
		}
	}

	// Every pair not in the table is illegal, including self-moves.
	for _, from := range schema.Statuses {
		for _, to := range schema.Statuses {
			if allowed[[2]schema.Status{from, to}] {
				continue
			}
			if Can(from, to) {
				t.Errorf("Can(%s, %s) = true, want false", from, to)
			}
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, status := range []schema.Status{schema.StatusDelivered, schema.StatusCancelled} {
		if !Terminal(status) {
			t.Errorf("Terminal(%s) = false, want true", status)
		}
		if next := Next(status); len(next) != 0 {
			t.Errorf("Next(%s) = %v, want empty", status, next)
		}
	}
	for _, status := range []schema.Status{schema.StatusPending, schema.StatusInProgress, schema.StatusCompleted} {
		if Terminal(status) {
			t.Errorf("Terminal(%s) = true, want false", status)
		}
	}
}

func TestRequestTransitionRejectsIllegalMoveBeforeNetwork(t *testing.T) {
	fake := &fakeUpdater{}
	repair := &schema.Repair{ID: "rep-1", Status: schema.StatusPending}

	_, err := RequestTransition(context.Background(), fake, repair, schema.StatusCompleted)
	if err == nil {
		t.Fatal("pending -> completed should be rejected")
	}
	if !api.IsCategory(err, api.CategoryIllegalTransition) {
		t.Errorf("error category = %s, want %s", api.CategoryOf(err), api.CategoryIllegalTransition)
	}
	if len(fake.calls) != 0 {
		t.Errorf("updater was called %d times, want 0 (rejection must precede any network call)", len(fake.calls))
	}
	if repair.Status != schema.StatusPending {
		t.Errorf("local status changed to %s, want unchanged pending", repair.Status)
	}
}

func TestRequestTransitionFromTerminalStatus(t *testing.T) {
	for _, terminal := range []schema.Status{schema.StatusDelivered, schema.StatusCancelled} {
		fake := &fakeUpdater{}
		repair := &schema.Repair{ID: "rep-2", Status: terminal}
		for _, target := range schema.Statuses {
			_, err := RequestTransition(context.Background(), fake, repair, target)
			if !api.IsCategory(err, api.CategoryIllegalTransition) {
				t.Errorf("transition %s -> %s: category = %s, want illegal_transition", terminal, target, api.CategoryOf(err))
			}
		}
		if len(fake.calls) != 0 {
			t.Errorf("updater called from terminal status %s", terminal)
		}
	}
}

func TestRequestTransitionUnknownTarget(t *testing.T) {
	fake := &fakeUpdater{}
	repair := &schema.Repair{ID: "rep-3", Status: schema.StatusPending}

	_, err := RequestTransition(context.Background(), fake, repair, schema.Status("exploded"))
	if !api.IsCategory(err, api.CategoryIllegalTransition) {
		t.Errorf("category = %s, want illegal_transition", api.CategoryOf(err))
	}
	if len(fake.calls) != 0 {
		t.Error("updater should not be called for unknown status")
	}
}

func TestRequestTransitionSuccessReturnsServerRecord(t *testing.T) {
	completedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	fake := &fakeUpdater{
		response: &schema.Repair{
			ID:          "rep-4",
			Status:      schema.StatusCompleted,
			CompletedAt: &completedAt,
			Profit:      120,
		},
	}
	repair := &schema.Repair{ID: "rep-4", Status: schema.StatusInProgress}

	updated, err := RequestTransition(context.Background(), fake, repair, schema.StatusCompleted)
	if err != nil {
		t.Fatalf("RequestTransition: %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0] != schema.StatusCompleted {
		t.Errorf("updater calls = %v, want one completed call", fake.calls)
	}
	if updated.Status != schema.StatusCompleted {
		t.Errorf("updated status = %s, want completed", updated.Status)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(completedAt) {
		t.Errorf("completedAt = %v, want server value %v", updated.CompletedAt, completedAt)
	}
	if updated.Profit != 120 {
		t.Errorf("profit = %v, want server-computed 120", updated.Profit)
	}
}

func TestRequestTransitionConflictLeavesLocalUnchanged(t *testing.T) {
	fake := &fakeUpdater{err: api.Conflict("repair already cancelled")}
	repair := &schema.Repair{ID: "rep-5", Status: schema.StatusInProgress}

	updated, err := RequestTransition(context.Background(), fake, repair, schema.StatusCompleted)
	if updated != nil {
		t.Error("conflict should not return a record")
	}
	if !api.IsCategory(err, api.CategoryConflict) {
		t.Errorf("category = %s, want conflict", api.CategoryOf(err))
	}
	if repair.Status != schema.StatusInProgress {
		t.Errorf("local status = %s, want unchanged in-progress", repair.Status)
	}
}

func TestNextReturnsCopy(t *testing.T) {
	next := Next(schema.StatusPending)
	if len(next) != 2 {
		t.Fatalf("Next(pending) = %v, want two targets", next)
	}
	next[0] = schema.StatusDelivered
	if Can(schema.StatusPending, schema.StatusDelivered) {
		t.Error("mutating Next's result must not affect the table")
	}
}

func TestLabels(t *testing.T) {
	for _, status := range schema.Statuses {
		if Label(status) == "" {
			t.Errorf("Label(%s) is empty", status)
		}
		if ActionLabel(status) == "" {
			t.Errorf("ActionLabel(%s) is empty", status)
		}
	}
}
