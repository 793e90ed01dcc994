// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON writes value to w as indented JSON followed by a newline.
// List commands use this for their --json output so scripts get one
// stable machine-readable shape regardless of terminal formatting.
func PrintJSON(w io.Writer, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(encoded)); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}
