// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire types exchanged with the repair-shop
// backend API. Field names mirror the backend's JSON exactly ("_id",
// camelCase) so the types round-trip through the API without a mapping
// layer.
//
// These are plain data types with no I/O and no dependency on the rest
// of the repository. The API client decodes into them; the TUI and CLI
// render from them. The client never fabricates server-owned fields
// (id, repairId, profit, completedAt) — those are authoritative from
// the backend.
package schema
