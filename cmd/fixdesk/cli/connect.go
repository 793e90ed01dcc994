// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/fixdesk/fixdesk/lib/api"
	"github.com/fixdesk/fixdesk/lib/config"
	"github.com/fixdesk/fixdesk/lib/session"
)

// Shop bundles the connection state every networked command needs:
// the loaded configuration, the persisted token store, and an API
// client whose bearer token tracks the store on every request.
type Shop struct {
	Config *config.Config
	Store  *session.TokenStore
	Client *api.Client
}

// Connect loads the configuration and builds the API client. The
// client reads the token store lazily, so a login performed by the
// same process (or a parallel one) is picked up without rebuilding.
//
// Connect does not verify the session — commands that require identity
// call [Shop.RequireToken] or probe with Me themselves, so read-only
// commands against an open backend still work anonymously.
func Connect() (*Shop, error) {
	configuration, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	store := session.NewTokenStore("")
	tokenSource := func() string {
		token, err := store.Load()
		if err != nil {
			return ""
		}
		return token
	}

	client := api.New(configuration.API.BaseURL, tokenSource, configuration.API.Timeout())
	return &Shop{Config: configuration, Store: store, Client: client}, nil
}

// RequireToken returns an error when no session token is stored. The
// message points at "fixdesk login" so the failure is actionable.
func (shop *Shop) RequireToken() error {
	token, err := shop.Store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("not logged in (run 'fixdesk login <username>')")
	}
	return nil
}

// Guard builds a session guard over the shop's token store and client.
// Used by the login/logout commands and the TUI, which share the
// guard's state machine instead of touching the store directly.
func (shop *Shop) Guard() *session.Guard {
	guard := session.NewGuard(shop.Store, NewCommandLogger())
	guard.UseClient(shop.Client)
	return guard
}

// HydratedGuard builds a guard and restores the persisted session.
func (shop *Shop) HydratedGuard(ctx context.Context) *session.Guard {
	guard := shop.Guard()
	guard.Hydrate(ctx)
	return guard
}
