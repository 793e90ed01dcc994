// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	var payload struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	body := strings.NewReader(`{"data": {"count": 7}}`)
	if err := DecodeResponse(body, &payload); err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if payload.Data.Count != 7 {
		t.Errorf("count = %d, want 7", payload.Data.Count)
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	var payload map[string]any
	if err := DecodeResponse(strings.NewReader("<html>bad gateway</html>"), &payload); err == nil {
		t.Error("DecodeResponse should fail on non-JSON input")
	}
}

func TestErrorMessageEnvelope(t *testing.T) {
	message := ErrorMessage(strings.NewReader(`{"status":"fail","message":"repair not found"}`))
	if message != "repair not found" {
		t.Errorf("message = %q, want %q", message, "repair not found")
	}
}

func TestErrorMessageRawBody(t *testing.T) {
	message := ErrorMessage(strings.NewReader("  upstream timeout\n"))
	if message != "upstream timeout" {
		t.Errorf("message = %q, want trimmed raw body", message)
	}
}

func TestErrorMessageEmptyBody(t *testing.T) {
	if message := ErrorMessage(strings.NewReader("")); message != "" {
		t.Errorf("message = %q, want empty", message)
	}
}
