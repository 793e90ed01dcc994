// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies client errors so that callers can make
// programmatic decisions (re-prompt, refetch, back off) without
// parsing error message text.
type ErrorCategory string

const (
	// CategoryInvalidCredentials indicates the backend rejected the
	// supplied username/password. The caller should re-prompt.
	CategoryInvalidCredentials ErrorCategory = "invalid_credentials"

	// CategoryNetwork indicates the backend was unreachable or the
	// request timed out. The caller may retry; state is unchanged.
	CategoryNetwork ErrorCategory = "network"

	// CategoryNotFound indicates the referenced record does not
	// exist — typically deleted concurrently by another actor.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict indicates the backend's state no longer
	// matches what the client expected (e.g., a status transition
	// raced with another actor's). The server state is authoritative;
	// the caller should refetch and discard its local guess.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryIllegalTransition indicates a status transition that
	// the lifecycle table forbids. Raised client-side, before any
	// network call.
	CategoryIllegalTransition ErrorCategory = "illegal_transition"

	// CategoryPermissionDenied indicates the backend refused the
	// operation for the authenticated technician.
	CategoryPermissionDenied ErrorCategory = "permission_denied"

	// CategoryInternal indicates an unexpected failure: a malformed
	// response, an I/O error, a bug. Not retryable as-is.
	CategoryInternal ErrorCategory = "internal"
)

// Error is a categorized client error. It wraps an inner error,
// preserving the chain for errors.Is/errors.As while adding the
// category for programmatic handling.
type Error struct {
	// Category classifies the error.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying message. The category travels
// separately via CategoryOf, not in the text.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the Error wrapper.
func (e *Error) Unwrap() error { return e.Err }

// InvalidCredentials creates an invalid-credentials error.
func InvalidCredentials(format string, args ...any) *Error {
	return &Error{Category: CategoryInvalidCredentials, Err: fmt.Errorf(format, args...)}
}

// Network creates a network error: the backend was unreachable.
func Network(format string, args ...any) *Error {
	return &Error{Category: CategoryNetwork, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: server-side state diverged.
func Conflict(format string, args ...any) *Error {
	return &Error{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// IllegalTransition creates a client-side illegal-transition error.
func IllegalTransition(format string, args ...any) *Error {
	return &Error{Category: CategoryIllegalTransition, Err: fmt.Errorf(format, args...)}
}

// PermissionDenied creates a permission-denied error.
func PermissionDenied(format string, args ...any) *Error {
	return &Error{Category: CategoryPermissionDenied, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf extracts the category from an error chain. Errors that
// never passed through this package report CategoryInternal.
func CategoryOf(err error) ErrorCategory {
	var categorized *Error
	if errors.As(err, &categorized) {
		return categorized.Category
	}
	return CategoryInternal
}

// IsCategory reports whether the error chain carries the given
// category.
func IsCategory(err error, category ErrorCategory) bool {
	return CategoryOf(err) == category
}
