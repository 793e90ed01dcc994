// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"
	"time"
)

func TestFlagsFromParamsBindsTaggedFields(t *testing.T) {
	type params struct {
		Status  string        `flag:"status,s" desc:"filter by status"`
		JSON    bool          `flag:"json"     desc:"machine-readable output"`
		Limit   int           `flag:"limit"    desc:"max rows" default:"20"`
		Price   float64       `flag:"price"    desc:"device price"`
		Timeout time.Duration `flag:"timeout"  desc:"request timeout" default:"15s"`
		Tags    []string      `flag:"tag"      desc:"repeatable tag"`
		skipped string
	}
	_ = params{}.skipped

	var p params
	flagSet := FlagsFromParams("test", &p)

	if err := flagSet.Parse([]string{
		"-s", "pending",
		"--json",
		"--price", "49.50",
		"--tag", "urgent",
		"--tag", "warranty",
	}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Status != "pending" {
		t.Errorf("Status = %q", p.Status)
	}
	if !p.JSON {
		t.Error("JSON flag not set")
	}
	if p.Limit != 20 {
		t.Errorf("Limit default = %d, want 20", p.Limit)
	}
	if p.Price != 49.50 {
		t.Errorf("Price = %v", p.Price)
	}
	if p.Timeout != 15*time.Second {
		t.Errorf("Timeout default = %v, want 15s", p.Timeout)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "urgent" || p.Tags[1] != "warranty" {
		t.Errorf("Tags = %v", p.Tags)
	}
}

func TestBindFlagsRejectsNonStruct(t *testing.T) {
	var notStruct int
	if err := BindFlags(&notStruct, nil); err == nil {
		t.Error("expected error for non-struct params")
	}
	if err := BindFlags(struct{}{}, nil); err == nil {
		t.Error("expected error for non-pointer params")
	}
}

func TestBindFlagsRejectsUnsupportedType(t *testing.T) {
	type params struct {
		Bad map[string]string `flag:"bad"`
	}
	var p params
	flagSet := FlagsFromParams("ok", &struct{}{})
	if err := BindFlags(&p, flagSet); err == nil {
		t.Error("expected error for unsupported field type")
	}
}
