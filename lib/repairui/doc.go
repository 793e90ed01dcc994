// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package repairui implements the Fixdesk terminal interface. Built on
// bubbletea (Elm architecture), it routes every screen through the
// session guard: the guard's verdict decides whether the user sees the
// hydration spinner, the login form, a permission notice, or the
// requested view. The four tabs (dashboard, repairs, customers,
// technicians) fetch their data from the backend through the [Backend]
// interface on entry and after every mutation.
//
// Generic UI components (theme, overlays, scrollbars, fuzzy matching,
// markdown rendering) live in [tui] and are re-exported here. Repair
// lifecycle legality comes from [lifecycle]; the UI only ever offers
// transitions that table allows, so a status dropdown never shows an
// illegal move.
//
// Data flow:
//
//	[repair shop backend REST API]
//	        | (Backend interface, lib/api.Client)
//	    [Model] <- bubbletea event loop, session guard verdicts
//	        |
//	  [terminal output]
package repairui
