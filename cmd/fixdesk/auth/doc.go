// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth implements the login, logout, and whoami commands.
//
// Login authenticates against the shop backend and persists the bearer
// token at the session guard's token path (~/.config/fixdesk/token, or
// $FIXDESK_SESSION_FILE). Subsequent commands pick the token up
// transparently. The password never touches the Go heap: it is read
// into a locked secret buffer and zeroed after the request.
package auth
