// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fixdesk/fixdesk/lib/schema"
)

func staticToken(token string) TokenSource {
	return func() string { return token }
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login request must not carry a bearer token")
		}
		var credentials struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			t.Fatalf("decoding login body: %v", err)
		}
		if credentials.Username != "tech1" || credentials.Password != "secret123" {
			t.Errorf("credentials = %+v", credentials)
		}
		io.WriteString(w, `{"token":"tok-abc","data":{"technician":{"_id":"t1","name":"Tech One","username":"tech1","active":true,"canAdd":true}}}`)
	}))
	defer server.Close()

	client := New(server.URL, nil, 0)
	token, technician, err := client.Login(context.Background(), "tech1", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-abc" {
		t.Errorf("token = %q", token)
	}
	if technician.Username != "tech1" || !technician.CanAdd {
		t.Errorf("technician = %+v", technician)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"wrong username or password"}`)
	}))
	defer server.Close()

	client := New(server.URL, nil, 0)
	_, _, err := client.Login(context.Background(), "tech1", "nope")
	if err == nil {
		t.Fatal("Login should fail")
	}
	if !IsCategory(err, CategoryInvalidCredentials) {
		t.Errorf("category = %s, want invalid_credentials", CategoryOf(err))
	}
	if !strings.Contains(err.Error(), "wrong username or password") {
		t.Errorf("error %q should carry the backend message", err)
	}
}

func TestLoginUnreachableBackend(t *testing.T) {
	// A closed server gives a connection error, not an HTTP response.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, nil, 0)
	_, _, err := client.Login(context.Background(), "tech1", "secret123")
	if !IsCategory(err, CategoryNetwork) {
		t.Errorf("category = %s, want network", CategoryOf(err))
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		io.WriteString(w, `{"data":{"technician":{"_id":"t1","username":"tech1"}}}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok-xyz"), 0)
	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuthorization != "Bearer tok-xyz" {
		t.Errorf("Authorization = %q, want Bearer tok-xyz", gotAuthorization)
	}
}

func TestUpdateRepairStatusSendsStatusOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/repairs/rep-1/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(payload) != 1 || payload["status"] != "completed" {
			t.Errorf("body = %s, want exactly {\"status\":\"completed\"}", body)
		}
		io.WriteString(w, `{"data":{"repair":{"_id":"rep-1","status":"completed","completedAt":"2024-01-01T10:00:00Z","profit":80}}}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	updated, err := client.UpdateRepairStatus(context.Background(), "rep-1", schema.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateRepairStatus: %v", err)
	}
	if updated.Status != schema.StatusCompleted {
		t.Errorf("status = %s", updated.Status)
	}
	if updated.CompletedAt == nil || updated.CompletedAt.UTC().Format("2006-01-02T15:04:05Z") != "2024-01-01T10:00:00Z" {
		t.Errorf("completedAt = %v, want server timestamp", updated.CompletedAt)
	}
	if updated.Profit != 80 {
		t.Errorf("profit = %v, want 80", updated.Profit)
	}
}

func TestUpdateRepairStatusConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message":"repair was already cancelled"}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	_, err := client.UpdateRepairStatus(context.Background(), "rep-1", schema.StatusCompleted)
	if !IsCategory(err, CategoryConflict) {
		t.Errorf("category = %s, want conflict", CategoryOf(err))
	}
}

func TestRepairNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"no repair with that id"}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	_, err := client.Repair(context.Background(), "rep-gone")
	if !IsCategory(err, CategoryNotFound) {
		t.Errorf("category = %s, want not_found", CategoryOf(err))
	}
}

func TestMeRejectedByExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("stale"), 0)
	_, err := client.Me(context.Background())
	if !IsCategory(err, CategoryPermissionDenied) {
		t.Errorf("category = %s, want permission_denied", CategoryOf(err))
	}
}

func TestRepairsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"repairs":[
			{"_id":"rep-1","repairId":"R-1001","status":"pending","deviceType":"mobile","fault":"cracked screen","price":350,"createdAt":"2024-02-10T09:30:00Z","customer":{"_id":"c1","name":"Amira","phone":"0100000000"}},
			{"_id":"rep-2","repairId":"R-1002","status":"delivered","deviceType":"laptop","fault":"no power","price":900,"createdAt":"2024-02-11T12:00:00Z"}
		]}}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	repairs, err := client.Repairs(context.Background())
	if err != nil {
		t.Fatalf("Repairs: %v", err)
	}
	if len(repairs) != 2 {
		t.Fatalf("len = %d, want 2", len(repairs))
	}
	if repairs[0].Customer == nil || repairs[0].Customer.Name != "Amira" {
		t.Errorf("embedded customer = %+v", repairs[0].Customer)
	}
	if repairs[1].Status != schema.StatusDelivered {
		t.Errorf("status = %s", repairs[1].Status)
	}
}

func TestDashboardStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/dashboard" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"data":{"totalProfit":1520.5,"pendingRepairs":4,"inProgressRepairs":2,"completedRepairs":9,"newCustomers":3}}`)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	stats, err := client.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TotalProfit != 1520.5 || stats.PendingRepairs != 4 || stats.NewCustomers != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExportBackupStreamsBlobUnmodified(t *testing.T) {
	blob := "opaque-backup-bytes-\x00\x01\x02"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/backup/export" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, blob)
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	var destination strings.Builder
	digest, size, err := client.ExportBackup(context.Background(), &destination)
	if err != nil {
		t.Fatalf("ExportBackup: %v", err)
	}
	if destination.String() != blob {
		t.Error("blob was modified in transit")
	}
	if size != int64(len(blob)) {
		t.Errorf("size = %d, want %d", size, len(blob))
	}
	if len(digest) != 64 {
		t.Errorf("digest %q is not a 256-bit hex digest", digest)
	}
}

func TestImportBackupMultipartField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart: %v", err)
		}
		file, header, err := r.FormFile("backupFile")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "shop.backup" {
			t.Errorf("filename = %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "blob-content" {
			t.Errorf("content = %q", content)
		}
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"), 0)
	if err := client.ImportBackup(context.Background(), "shop.backup", strings.NewReader("blob-content")); err != nil {
		t.Fatalf("ImportBackup: %v", err)
	}
}

func TestErrorCategoryHelpers(t *testing.T) {
	err := Conflict("state moved")
	if CategoryOf(err) != CategoryConflict {
		t.Errorf("CategoryOf = %s", CategoryOf(err))
	}
	wrapped := &Error{Category: CategoryNotFound, Err: err}
	if CategoryOf(wrapped) != CategoryNotFound {
		t.Error("outermost category should win")
	}
	if CategoryOf(io.EOF) != CategoryInternal {
		t.Error("foreign errors should report internal")
	}
}
