// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
)

// ReadFromPath reads a secret (typically the login password for
// non-interactive use) from a file, or from stdin when path is "-".
// Surrounding whitespace is trimmed, every intermediate copy is
// zeroed, and the result lands in an mmap-backed Buffer the caller
// must close. An empty source is an error: a blank password is never
// what the operator meant.
func ReadFromPath(path string) (*Buffer, error) {
	var data []byte

	if path == "-" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			return nil, fmt.Errorf("stdin is empty")
		}
		data = scanner.Bytes()
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading secret file: %w", err)
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret is empty")
	}

	buffer, err := NewFromBytes(trimmed)
	// trimmed aliases data, but NewFromBytes only zeroed the trimmed
	// window; clear the surrounding whitespace bytes too.
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
