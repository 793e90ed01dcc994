// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package lifecycle defines the repair-ticket status state machine:
// the legal transitions between the five statuses, and the guarded
// transition request that every status change must pass through.
//
// The transition table is the single source of truth. The UI derives
// the actions it offers from this table applied to the server-confirmed
// current status — never from which controls happen to be rendered,
// and never from a locally optimistic guess. An illegal transition is
// rejected here, before any network call.
//
// This package is a pure data structure plus one guarded remote call;
// it has no HTTP types of its own and talks to the backend through the
// narrow StatusUpdater interface.
package lifecycle

import (
	"context"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// transitions is the full transition table. A status absent from the
// map, or mapped to an empty slice, is terminal.
var transitions = map[schema.Status][]schema.Status{
	schema.StatusPending:    {schema.StatusInProgress, schema.StatusCancelled},
	schema.StatusInProgress: {schema.StatusCompleted, schema.StatusCancelled},
	schema.StatusCompleted:  {schema.StatusDelivered, schema.StatusCancelled},
	schema.StatusDelivered:  {},
	schema.StatusCancelled:  {},
}

// Can reports whether the move from one status to another is legal.
func Can(from, to schema.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the statuses reachable from the given status, in
// presentation order. The returned slice is a copy; callers may
// mutate it. Terminal statuses return an empty slice.
func Next(from schema.Status) []schema.Status {
	next := transitions[from]
	out := make([]schema.Status, len(next))
	copy(out, next)
	return out
}

// Terminal reports whether a status has no outgoing transitions.
func Terminal(status schema.Status) bool {
	return len(transitions[status]) == 0
}

// StatusUpdater is the narrow slice of the API client that
// RequestTransition needs: the status-only PATCH. *api.Client
// satisfies it; tests substitute a fake that records calls.
type StatusUpdater interface {
	UpdateRepairStatus(ctx context.Context, id string, status schema.Status) (*schema.Repair, error)
}

// RequestTransition validates that target is reachable from the
// repair's current status and, only then, issues the remote
// status-only update. On success the returned record is the backend's
// authoritative copy (including any server-computed completedAt and
// profit) and the caller replaces its local one. On any failure —
// illegal transition, network, not-found, conflict — no local state
// has changed and the caller's copy remains valid; a conflict in
// particular means another actor moved the ticket first and the
// caller should refetch rather than retry.
func RequestTransition(ctx context.Context, updater StatusUpdater, repair *schema.Repair, target schema.Status) (*schema.Repair, error) {
	if !schema.ValidStatus(target) {
		return nil, api.IllegalTransition("unknown status %q", target)
	}
	if !Can(repair.Status, target) {
		if Terminal(repair.Status) {
			return nil, api.IllegalTransition("repair %s is %s, which is terminal", repair.ID, repair.Status)
		}
		return nil, api.IllegalTransition("repair %s cannot move from %s to %s", repair.ID, repair.Status, target)
	}
	return updater.UpdateRepairStatus(ctx, repair.ID, target)
}

// Label returns the display label for a status.
func Label(status schema.Status) string {
	switch status {
	case schema.StatusPending:
		return "Pending"
	case schema.StatusInProgress:
		return "In progress"
	case schema.StatusCompleted:
		return "Completed"
	case schema.StatusDelivered:
		return "Delivered"
	case schema.StatusCancelled:
		return "Cancelled"
	}
	return string(status)
}

// ActionLabel returns the label for the user action that requests a
// transition to the given status, matching the controls the original
// counter staff are used to.
func ActionLabel(target schema.Status) string {
	switch target {
	case schema.StatusInProgress:
		return "Start repair"
	case schema.StatusCompleted:
		return "Finish repair"
	case schema.StatusDelivered:
		return "Hand to customer"
	case schema.StatusCancelled:
		return "Cancel repair"
	}
	return Label(target)
}
