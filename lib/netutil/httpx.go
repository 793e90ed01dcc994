// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP response helpers for the API client.
//
// All JSON response body reads are bounded at MaxResponseSize to
// prevent unbounded memory allocation from a misbehaving server. The
// helpers are for JSON API responses only — the backup export blob is
// streamed incrementally with io.Copy, not read through this package.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize bounds JSON API response body reads: 32 MB. A full
// repair list for a busy shop is a few hundred kilobytes; the limit
// is generous so it never interferes with legitimate responses.
const MaxResponseSize int64 = 32 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll on HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON API response body (bounded) and decodes
// it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// ErrorMessage extracts a human-readable message from an HTTP error
// response. The backend wraps errors as {"message": "..."}; when the
// body is not that shape (proxies, crashes), the raw body is returned
// trimmed. Read errors yield an empty string — a missing body is
// still a usable error message.
func ErrorMessage(body io.Reader) string {
	data, _ := ReadResponse(body)
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(data))
}
