// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a repair ticket. The five values
// below are the only ones the backend emits; the legal moves between
// them live in the lifecycle package, which is the single place that
// transition legality is decided.
type Status string

const (
	// StatusPending means the device has been received but work has
	// not started.
	StatusPending Status = "pending"
	// StatusInProgress means a technician is actively working on the
	// repair.
	StatusInProgress Status = "in-progress"
	// StatusCompleted means the repair is finished and the device is
	// awaiting pickup.
	StatusCompleted Status = "completed"
	// StatusDelivered means the customer has picked up the device.
	// Terminal.
	StatusDelivered Status = "delivered"
	// StatusCancelled means the repair was abandoned. Terminal.
	StatusCancelled Status = "cancelled"
)

// Statuses lists all valid statuses in lifecycle order. Used for
// validation and for stable iteration in tests and UI grouping.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}

// ValidStatus reports whether s is one of the five defined statuses.
func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus converts a user-supplied string into a Status, or
// returns an error listing the valid values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !ValidStatus(s) {
		return "", fmt.Errorf("unknown status %q (valid: pending, in-progress, completed, delivered, cancelled)", raw)
	}
	return s, nil
}

// DeviceType categorizes the device under repair.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceLaptop  DeviceType = "laptop"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
	DeviceOther   DeviceType = "other"
)

// DeviceTypes lists all valid device types.
var DeviceTypes = []DeviceType{
	DeviceMobile,
	DeviceLaptop,
	DeviceTablet,
	DeviceDesktop,
	DeviceOther,
}

// ParseDeviceType converts a user-supplied string into a DeviceType,
// or returns an error listing the valid values.
func ParseDeviceType(raw string) (DeviceType, error) {
	d := DeviceType(raw)
	for _, known := range DeviceTypes {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown device type %q (valid: mobile, laptop, tablet, desktop, other)", raw)
}

// CustomerRef is the customer reference embedded in repair responses.
// The backend populates it from the customer collection; list views
// need the name and phone without a second round trip.
type CustomerRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Repair is a repair ticket as returned by the backend. Price, profit,
// repairId, and completedAt are computed server-side; the client reads
// them but never writes them.
type Repair struct {
	// ID is the backend's record identifier.
	ID string `json:"_id"`

	// RepairID is the short display number shown to customers
	// (e.g., "R-1042"). Assigned by the backend on creation.
	RepairID string `json:"repairId,omitempty"`

	// Customer is the owning customer. Populated in responses; when
	// creating or updating a repair, only the ID is sent (see
	// RepairInput).
	Customer *CustomerRef `json:"customer,omitempty"`

	// DeviceType is the category of device under repair.
	DeviceType DeviceType `json:"deviceType"`

	// Color is the device color, used to disambiguate devices at
	// the counter.
	Color string `json:"color,omitempty"`

	// Fault is the reported fault description. Markdown is allowed;
	// the TUI renders it in the detail pane.
	Fault string `json:"fault"`

	// Price is the quoted customer price.
	Price float64 `json:"price"`

	// WholesalePrice is the parts cost, if recorded.
	WholesalePrice float64 `json:"wholesalePrice,omitempty"`

	// Profit is computed by the backend from price and wholesale
	// price. Zero until the backend computes it.
	Profit float64 `json:"profit,omitempty"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// CreatedAt is set by the backend on creation.
	CreatedAt time.Time `json:"createdAt"`

	// CompletedAt is set by the backend when the status reaches
	// completed. Nil before then.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// ExpectedCompletionDate is the promised pickup date, if one was
	// given to the customer.
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty"`
}

// RepairInput is the client-writable subset of a repair, sent on
// create and whole-record update. Status is deliberately absent:
// status changes go through the status-only endpoint so concurrent
// edits to other fields are never clobbered.
type RepairInput struct {
	// Customer is the customer record ID.
	Customer string `json:"customer"`

	DeviceType DeviceType `json:"deviceType"`
	Color      string     `json:"color,omitempty"`
	Fault      string     `json:"fault"`

	Price          float64 `json:"price"`
	WholesalePrice float64 `json:"wholesalePrice,omitempty"`

	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty"`
}

// DashboardStats is the aggregate payload of GET /stats/dashboard.
// All counts are computed server-side.
type DashboardStats struct {
	TotalProfit       float64 `json:"totalProfit"`
	PendingRepairs    int     `json:"pendingRepairs"`
	InProgressRepairs int     `json:"inProgressRepairs"`
	CompletedRepairs  int     `json:"completedRepairs"`
	NewCustomers      int     `json:"newCustomers"`
}
