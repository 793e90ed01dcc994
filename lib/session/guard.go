// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns authentication state: the persisted bearer
// token, the cached current-technician profile, and the guard that
// decides whether a protected view renders, redirects to login, or
// shows a loading placeholder.
//
// # Lifecycle
//
// A Guard starts in StateInitializing. Hydrate moves it to
// StateAuthenticated (persisted token confirmed against /auth/me) or
// StateAnonymous (no token, or confirmation failed — the stale token
// is discarded as a local recovery, never a fatal error). Login moves
// Anonymous to Authenticated; Logout and a failed re-confirmation
// move Authenticated back to Anonymous. No path re-enters
// StateInitializing.
//
// # Concurrency
//
// Guard is not safe for concurrent use. The TUI and CLI serialize
// access through their event loop; the guard is the single writer of
// the token store, and views read the cached technician through
// CurrentUser.
package session

import (
	"context"
	"log/slog"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/authz"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// State is the guard's position in the session lifecycle.
type State int

const (
	// StateInitializing means Hydrate has not completed. Views show
	// a loading placeholder; nothing redirects yet.
	StateInitializing State = iota
	// StateAnonymous means no confirmed session exists.
	StateAnonymous
	// StateAuthenticated means the token was confirmed and
	// CurrentUser is non-nil.
	StateAuthenticated
)

// String returns the state name for logs.
func (state State) String() string {
	switch state {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Decision is the guard's verdict for rendering a protected view,
// evaluated by Decide in the order the render policy prescribes.
type Decision int

const (
	// DecisionLoading: session still hydrating; show a placeholder,
	// do not redirect.
	DecisionLoading Decision = iota
	// DecisionLogin: anonymous; redirect to the login view,
	// preserving the requested location for post-login return.
	DecisionLogin
	// DecisionDenied: authenticated but lacking every required
	// permission; redirect to the home view.
	DecisionDenied
	// DecisionRender: render the requested view.
	DecisionRender
)

// AuthAPI is the slice of the API client the guard needs. *api.Client
// satisfies it; tests substitute fakes.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, *schema.Technician, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*schema.Technician, error)
}

// Guard tracks whether a user is authenticated and what permissions
// they hold, and gates protected views. It is the single writer of
// the token store and of the cached technician profile.
type Guard struct {
	store  *TokenStore
	client AuthAPI
	logger *slog.Logger

	state      State
	token      string
	technician *schema.Technician
}

// NewGuard creates a guard in StateInitializing. Call UseClient
// before Hydrate — the API client needs the guard's Token method as
// its token source, so the two are wired in two steps.
func NewGuard(store *TokenStore, logger *slog.Logger) *Guard {
	return &Guard{
		store:  store,
		logger: logger,
		state:  StateInitializing,
	}
}

// UseClient attaches the API client the guard authenticates through.
func (guard *Guard) UseClient(client AuthAPI) {
	guard.client = client
}

// Token returns the current bearer token, or "" when anonymous. This
// is the api.TokenSource for the client: rotation on login/logout is
// visible on the next request.
func (guard *Guard) Token() string {
	return guard.token
}

// State returns the guard's current lifecycle state.
func (guard *Guard) State() State {
	return guard.state
}

// CurrentUser returns the cached technician profile, or nil when not
// authenticated. The profile is read-only and scoped to the session;
// it is non-nil if and only if the token was confirmed against the
// identity endpoint.
func (guard *Guard) CurrentUser() *schema.Technician {
	return guard.technician
}

// Hydrate resolves the initial session from the persisted token. With
// no token it completes immediately as anonymous. With a token it
// confirms against the identity endpoint; on any failure — expired
// token, network error — the persisted token is discarded and the
// session reverts to anonymous. That recovery is local and logged,
// never surfaced as an error: an invalid token at startup is an
// expected condition.
//
// Hydrate only acts from StateInitializing; later calls return the
// current state unchanged (the lifecycle never re-enters
// initializing).
func (guard *Guard) Hydrate(ctx context.Context) State {
	if guard.state != StateInitializing {
		return guard.state
	}

	token, err := guard.store.Load()
	if err != nil {
		guard.logger.Warn("token store unreadable, starting anonymous", "error", err)
		guard.state = StateAnonymous
		return guard.state
	}
	if token == "" {
		guard.state = StateAnonymous
		return guard.state
	}

	guard.token = token
	technician, err := guard.client.Me(ctx)
	if err != nil {
		guard.logger.Info("persisted session rejected, discarding token", "error", err)
		guard.token = ""
		if removeErr := guard.store.Remove(); removeErr != nil {
			guard.logger.Warn("discarding stale token failed", "error", removeErr)
		}
		guard.state = StateAnonymous
		return guard.state
	}

	guard.technician = technician
	guard.state = StateAuthenticated
	guard.logger.Info("session hydrated", "username", technician.Username)
	return guard.state
}

// Login submits credentials, and on success persists the returned
// token and caches the profile. On failure the session remains
// anonymous and the categorized error (invalid_credentials, network)
// is returned for the caller's user-facing messaging.
func (guard *Guard) Login(ctx context.Context, username, password string) error {
	token, technician, err := guard.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := guard.store.Save(token); err != nil {
		// A session that survives only until exit is worse than a
		// clean failure: the next start would silently be anonymous.
		return api.Internal("persisting session token: %w", err)
	}

	guard.token = token
	guard.technician = technician
	guard.state = StateAuthenticated
	guard.logger.Info("logged in", "username", technician.Username)
	return nil
}

// Logout notifies the backend (best-effort: a failure is logged and
// ignored — the server-side session may outlive us, but client-side
// sign-out always succeeds), then unconditionally discards the token
// and the cached profile.
func (guard *Guard) Logout(ctx context.Context) {
	if guard.state == StateAuthenticated {
		if err := guard.client.Logout(ctx); err != nil {
			guard.logger.Warn("remote logout failed, clearing local session anyway", "error", err)
		}
	}

	guard.token = ""
	guard.technician = nil
	guard.state = StateAnonymous
	if err := guard.store.Remove(); err != nil {
		guard.logger.Warn("removing token file failed", "error", err)
	}
}

// Authorize evaluates the any-of rule for the current user: allowed
// when required is empty, when the user is an admin, or when the user
// holds at least one required permission.
func (guard *Guard) Authorize(required ...authz.Permission) bool {
	return authz.Granted(guard.technician, required...)
}

// Decide applies the render policy for a protected view, in order:
// loading while initializing, login redirect while anonymous, denied
// when the view's required permissions all fail, render otherwise.
func (guard *Guard) Decide(required ...authz.Permission) Decision {
	switch guard.state {
	case StateInitializing:
		return DecisionLoading
	case StateAnonymous:
		return DecisionLogin
	}
	if len(required) > 0 && !guard.Authorize(required...) {
		return DecisionDenied
	}
	return DecisionRender
}
