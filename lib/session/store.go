// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token — the only durable piece of
// session state. The token lives in a single file (the terminal
// analogue of the browser's fixed localStorage key); absence of the
// file is the sole signal of an anonymous session at startup.
//
// The guard is the single writer: Save on login, Remove on logout.
// No other component touches the file.
type TokenStore struct {
	path string
}

// TokenFilePath returns the token file location. Checks the
// FIXDESK_SESSION_FILE environment variable first, then falls back to
// ~/.config/fixdesk/token (respecting XDG_CONFIG_HOME).
func TokenFilePath() string {
	if envPath := os.Getenv("FIXDESK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "fixdesk-token")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "fixdesk", "token")
}

// NewTokenStore creates a store backed by the given file path. An
// empty path selects TokenFilePath().
func NewTokenStore(path string) *TokenStore {
	if path == "" {
		path = TokenFilePath()
	}
	return &TokenStore{path: path}
}

// Path returns the token file location.
func (store *TokenStore) Path() string {
	return store.path
}

// Load reads the persisted token. A missing file is not an error — it
// means the session is anonymous, and ("", nil) is returned. Any
// other failure (permissions, I/O) is reported.
func (store *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file %s: %w", store.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with mode 0600 (owner-only), creating the
// parent directory with mode 0700 if needed.
func (store *TokenStore) Save(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to save an empty token")
	}
	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating token directory %s: %w", directory, err)
	}
	if err := os.WriteFile(store.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token file %s: %w", store.path, err)
	}
	return nil
}

// Remove deletes the persisted token. Removing an absent token is a
// no-op, so Remove is safe to call on every logout.
func (store *TokenStore) Remove() error {
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file %s: %w", store.path, err)
	}
	return nil
}
