// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package authz evaluates technician permissions. The permission
// vocabulary is a closed set mirroring the backend's boolean flags,
// and the single evaluation rule lives here so that views never test
// flag booleans ad hoc.
//
// Evaluation is any-of: access is granted when the requirement set is
// empty, when the technician is an administrator, or when the
// technician holds at least one of the required permissions. The
// backend enforces authorization authoritatively on every request;
// this package only decides what the client offers to render.
package authz

import (
	"fmt"

	"github.com/fixdesk/fixdesk/lib/schema"
)

// Permission names one of the technician capability flags.
type Permission string

const (
	// Receive permits receiving devices at the counter.
	Receive Permission = "canReceive"
	// Add permits creating customers and repairs.
	Add Permission = "canAdd"
	// Edit permits editing existing records.
	Edit Permission = "canEdit"
	// Delete permits deleting records.
	Delete Permission = "canDelete"
)

// Permissions lists the closed permission set, excluding the admin
// flag (admin is an override, not a grantable permission).
var Permissions = []Permission{Receive, Add, Edit, Delete}

// Short returns the short display form of the permission ("edit" for
// "canEdit"). Unknown values are returned unchanged.
func (permission Permission) Short() string {
	switch permission {
	case Receive:
		return "receive"
	case Add:
		return "add"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	}
	return string(permission)
}

// Parse converts a flag name into a Permission, accepting both the
// wire form ("canEdit") and the short form ("edit").
func Parse(raw string) (Permission, error) {
	switch raw {
	case string(Receive), "receive":
		return Receive, nil
	case string(Add), "add":
		return Add, nil
	case string(Edit), "edit":
		return Edit, nil
	case string(Delete), "delete":
		return Delete, nil
	}
	return "", fmt.Errorf("unknown permission %q (valid: receive, add, edit, delete)", raw)
}

// Holds reports whether the technician carries the single named
// permission flag. The admin override is applied by Granted, not here.
func Holds(technician *schema.Technician, permission Permission) bool {
	switch permission {
	case Receive:
		return technician.CanReceive
	case Add:
		return technician.CanAdd
	case Edit:
		return technician.CanEdit
	case Delete:
		return technician.CanDelete
	}
	return false
}

// Granted is the any-of evaluation rule: true when required is empty,
// when the technician is an administrator, or when the technician
// holds at least one of the required permissions. A nil technician is
// never granted anything.
func Granted(technician *schema.Technician, required ...Permission) bool {
	if technician == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}
	if technician.IsAdmin {
		return true
	}
	for _, permission := range required {
		if Holds(technician, permission) {
			return true
		}
	}
	return false
}
