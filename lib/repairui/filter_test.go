// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package repairui

import (
	"testing"

	"github.com/fixdesk/fixdesk/lib/schema"
)

func sampleRepairs() []schema.Repair {
	return []schema.Repair{
		{
			ID:         "r1",
			RepairID:   "R-1001",
			Customer:   &schema.CustomerRef{ID: "c1", Name: "Sara Hassan", Phone: "0100111222"},
			DeviceType: schema.DeviceMobile,
			Color:      "black",
			Fault:      "screen flickers after drop",
			Status:     schema.StatusPending,
		},
		{
			ID:         "r2",
			RepairID:   "R-1002",
			Customer:   &schema.CustomerRef{ID: "c2", Name: "Omar Farouk"},
			DeviceType: schema.DeviceLaptop,
			Fault:      "battery drains in an hour",
			Status:     schema.StatusInProgress,
		},
		{
			ID:         "r3",
			RepairID:   "R-1003",
			Customer:   &schema.CustomerRef{ID: "c1", Name: "Sara Hassan"},
			DeviceType: schema.DeviceTablet,
			Fault:      "cracked digitizer",
			Status:     schema.StatusDelivered,
		},
	}
}

func TestApplyFuzzyMatchesAcrossFields(t *testing.T) {
	repairs := sampleRepairs()
	cases := []struct {
		query string
		want  string
	}{
		{"sara", "r1"},        // customer name, case-insensitive
		{"0100", "r1"},        // customer phone
		{"battery", "r2"},     // fault text
		{"R-1003", "r3"},      // repair number
		{"laptop", "r2"},      // device type
		{"in-progress", "r2"}, // status
	}
	for _, testCase := range cases {
		filter := FilterModel{Input: testCase.query}
		results := filter.ApplyFuzzy(repairs, nil)
		found := false
		for _, result := range results {
			if result.Repair.ID == testCase.want {
				found = true
			}
		}
		if !found {
			t.Errorf("query %q did not match repair %s", testCase.query, testCase.want)
		}
	}
}

func TestApplyFuzzyNoMatch(t *testing.T) {
	filter := FilterModel{Input: "zzzzzz"}
	if got := filter.ApplyFuzzy(sampleRepairs(), nil); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestApplyFuzzyEmptyFilterKeepsOrder(t *testing.T) {
	filter := FilterModel{}
	results := filter.ApplyFuzzy(sampleRepairs(), nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for index, want := range []string{"r1", "r2", "r3"} {
		if results[index].Repair.ID != want {
			t.Errorf("results[%d] = %s, want %s", index, results[index].Repair.ID, want)
		}
		if results[index].Score != 0 {
			t.Errorf("empty filter should carry zero score, got %d", results[index].Score)
		}
	}
}

func TestApplyFuzzyNonContiguous(t *testing.T) {
	// "scrflk" should match "screen flickers" on r1.
	filter := FilterModel{Input: "scrflk"}
	results := filter.ApplyFuzzy(sampleRepairs(), nil)
	found := false
	for _, result := range results {
		if result.Repair.ID == "r1" {
			found = true
			if result.Score <= 0 {
				t.Error("expected positive score for fuzzy match")
			}
			if len(result.Positions) == 0 {
				t.Error("expected match positions for highlighting")
			}
		}
	}
	if !found {
		t.Error("r1 should match fuzzy query scrflk")
	}
}

func TestApplyFuzzySortedByScore(t *testing.T) {
	repairs := []schema.Repair{
		{ID: "scattered", Fault: "b-x a-y t-z t-q e-w r-e y-t"},
		{ID: "exact", Fault: "battery swelling"},
	}
	filter := FilterModel{Input: "battery"}
	results := filter.ApplyFuzzy(repairs, nil)
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Repair.ID != "exact" {
		t.Errorf("best match = %s, want the exact substring", results[0].Repair.ID)
	}
}

func TestBuildListItemsGroupsByLifecycleOrder(t *testing.T) {
	items := BuildListItems(sampleRepairs(), map[schema.Status]bool{})

	var headers []schema.Status
	rowCount := 0
	for _, item := range items {
		if item.IsHeader {
			headers = append(headers, item.GroupStatus)
		} else {
			rowCount++
		}
	}
	want := []schema.Status{schema.StatusPending, schema.StatusInProgress, schema.StatusDelivered}
	if len(headers) != len(want) {
		t.Fatalf("headers = %v, want %v", headers, want)
	}
	for index := range want {
		if headers[index] != want[index] {
			t.Errorf("headers[%d] = %s, want %s", index, headers[index], want[index])
		}
	}
	if rowCount != 3 {
		t.Errorf("row count = %d, want 3", rowCount)
	}
}

func TestBuildListItemsCollapsedGroup(t *testing.T) {
	collapsed := map[schema.Status]bool{schema.StatusPending: true}
	items := BuildListItems(sampleRepairs(), collapsed)
	for _, item := range items {
		if !item.IsHeader && item.Repair.Status == schema.StatusPending {
			t.Error("collapsed pending group should not emit repair rows")
		}
	}
}
