// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "time"

// Customer is a customer record as returned by the backend.
type Customer struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerInput is the client-writable subset of a customer, sent on
// create and update.
type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}
