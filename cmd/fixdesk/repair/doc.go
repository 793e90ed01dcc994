// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package repair implements the "fixdesk repair" subcommand group:
// listing, inspecting, receiving, moving, and deleting repair orders.
//
// Repairs are referenced either by their record ID or by the
// human-facing repair number (R-1042); resolveRepair accepts both.
// Status moves go through the lifecycle table, so an illegal move
// fails locally with the legal targets listed — it never reaches the
// backend.
package repair
