// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewTokenStore(path)

	if err := store.Save("tok-123"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("token file mode = %o, want 0600", mode)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
}

func TestTokenStoreLoadAbsent(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load of absent file should not error: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestTokenStoreRemoveIdempotent(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Remove(); err != nil {
		t.Errorf("Remove of absent file should be a no-op: %v", err)
	}
	if err := store.Save("tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestTokenStoreRejectsEmptyToken(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Save(""); err == nil {
		t.Error("Save of empty token should fail")
	}
}

func TestTokenFilePathEnvOverride(t *testing.T) {
	t.Setenv("FIXDESK_SESSION_FILE", "/tmp/custom-token")
	if path := TokenFilePath(); path != "/tmp/custom-token" {
		t.Errorf("path = %q, want env override", path)
	}
}
