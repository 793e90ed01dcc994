// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"context"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// Backend is the slice of the API client the TUI depends on. Tests
// substitute an in-memory fake; production passes *api.Client.
type Backend interface {
	Repairs(ctx context.Context) ([]schema.Repair, error)
	RecentRepairs(ctx context.Context) ([]schema.Repair, error)
	CreateRepair(ctx context.Context, input schema.RepairInput) (*schema.Repair, error)
	UpdateRepair(ctx context.Context, id string, input schema.RepairInput) (*schema.Repair, error)
	UpdateRepairStatus(ctx context.Context, id string, status schema.Status) (*schema.Repair, error)
	DeleteRepair(ctx context.Context, id string) error

	Customers(ctx context.Context) ([]schema.Customer, error)
	CreateCustomer(ctx context.Context, input schema.CustomerInput) (*schema.Customer, error)
	UpdateCustomer(ctx context.Context, id string, input schema.CustomerInput) (*schema.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	Technicians(ctx context.Context) ([]schema.Technician, error)
	SetTechnicianActive(ctx context.Context, id string, active bool) (*schema.Technician, error)

	DashboardStats(ctx context.Context) (*schema.DashboardStats, error)
}

var _ Backend = (*api.Client)(nil)
