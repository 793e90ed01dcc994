// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "time"

// Technician is a technician account as returned by the backend. The
// client holds a read-only cached copy of the current user's record,
// scoped to the session; accounts are owned by the backend.
//
// The five permission flags form a closed set. Evaluation (any-of
// semantics, admin override) lives in the authz package — views must
// not test these booleans directly.
type Technician struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	Specialization string `json:"specialization,omitempty"`

	// Active disabled accounts cannot log in. Toggled via the
	// technician status endpoint, admin only.
	Active bool `json:"active"`

	// CanReceive permits receiving devices (creating repairs from
	// the counter).
	CanReceive bool `json:"canReceive"`
	// CanAdd permits creating customers and repairs.
	CanAdd bool `json:"canAdd"`
	// CanEdit permits editing existing records.
	CanEdit bool `json:"canEdit"`
	// CanDelete permits deleting records.
	CanDelete bool `json:"canDelete"`
	// IsAdmin bypasses every permission check and unlocks account
	// management and backup operations.
	IsAdmin bool `json:"isAdmin"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// TechnicianInput is the client-writable subset of a technician
// account, sent on create and update. Password is omitted from JSON
// when empty so that updates without a password change leave the
// stored credential untouched.
type TechnicianInput struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	Password       string `json:"password,omitempty"`
	Specialization string `json:"specialization,omitempty"`

	CanReceive bool `json:"canReceive"`
	CanAdd     bool `json:"canAdd"`
	CanEdit    bool `json:"canEdit"`
	CanDelete  bool `json:"canDelete"`
	IsAdmin    bool `json:"isAdmin"`
}
