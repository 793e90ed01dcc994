// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the repair-shop backend
// REST API. Every screen in the terminal UI and every CLI command goes
// through this client; it owns the wire envelopes, the bearer-token
// header, and the mapping from HTTP failures to the categorized error
// taxonomy in errors.go.
//
// The client holds no session state of its own. The bearer token is
// supplied by a TokenSource callback owned by the session guard, so
// token rotation on login/logout takes effect on the next request
// without reconstructing the client.
//
// All business logic — id generation, profit computation, permission
// enforcement, status timestamps — lives behind the API. The client
// returns the backend's records verbatim and never fabricates fields.
package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/fixdesk/fixdesk/lib/netutil"
	"github.com/fixdesk/fixdesk/lib/schema"
)

// DefaultTimeout bounds every request. An unbounded hang on hydrate
// or login would strand the UI on its loading screen, so the client
// always carries a deadline; the context may impose a shorter one.
const DefaultTimeout = 15 * time.Second

// TokenSource supplies the current bearer token, or "" when the
// session is anonymous. The session guard is the single writer of the
// underlying token; the client only reads it per request.
type TokenSource func() string

// Client is a typed HTTP client for the repair-shop backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenSource
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:5000/api"). A nil tokenSource means every request
// is sent anonymously. A zero timeout selects DefaultTimeout.
func New(baseURL string, tokenSource TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tokenSource == nil {
		tokenSource = func() string { return "" }
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      tokenSource,
	}
}

// NewForTesting creates a Client with a custom transport. Used by
// tests that redirect requests to an httptest.Server.
func NewForTesting(transport http.RoundTripper, baseURL string, tokenSource TokenSource) *Client {
	client := New(baseURL, tokenSource, 0)
	client.httpClient.Transport = transport
	return client
}

// BaseURL returns the API root this client was configured with.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// --- Auth ---

// Login submits credentials to POST /auth/login and returns the
// bearer token and technician profile on success. A 400/401 response
// maps to the invalid-credentials category; the caller owns
// user-facing messaging and token persistence.
func (client *Client) Login(ctx context.Context, username, password string) (string, *schema.Technician, error) {
	requestBody := map[string]string{"username": username, "password": password}
	response, err := client.do(ctx, http.MethodPost, "/auth/login", requestBody)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusBadRequest, http.StatusUnauthorized:
		return "", nil, InvalidCredentials("login: %s", errorMessageOr(response.Body, "wrong username or password"))
	default:
		return "", nil, client.responseError("login", response)
	}

	var result struct {
		Token string `json:"token"`
		Data  struct {
			Technician schema.Technician `json:"technician"`
		} `json:"data"`
	}
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return "", nil, Internal("login: %w", err)
	}
	if result.Token == "" {
		return "", nil, Internal("login: response carried no token")
	}
	return result.Token, &result.Data.Technician, nil
}

// Logout calls POST /auth/logout. Best-effort by contract: callers
// discard the local token regardless of the result.
func (client *Client) Logout(ctx context.Context) error {
	response, err := client.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode/100 != 2 {
		return client.responseError("logout", response)
	}
	return nil
}

// Me confirms the current token against GET /auth/me and returns the
// authenticated technician. Any non-2xx response means the session is
// invalid.
func (client *Client) Me(ctx context.Context) (*schema.Technician, error) {
	var result struct {
		Data struct {
			Technician schema.Technician `json:"technician"`
		} `json:"data"`
	}
	if err := client.getJSON(ctx, "/auth/me", &result); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &result.Data.Technician, nil
}

// --- Customers ---

// Customers returns all customer records.
func (client *Client) Customers(ctx context.Context) ([]schema.Customer, error) {
	var result struct {
		Data struct {
			Customers []schema.Customer `json:"customers"`
		} `json:"data"`
	}
	if err := client.getJSON(ctx, "/customers", &result); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	return result.Data.Customers, nil
}

// CreateCustomer creates a customer record.
func (client *Client) CreateCustomer(ctx context.Context, input schema.CustomerInput) (*schema.Customer, error) {
	var result struct {
		Data struct {
			Customer schema.Customer `json:"customer"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPost, "/customers", input, &result); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &result.Data.Customer, nil
}

// UpdateCustomer updates a customer record.
func (client *Client) UpdateCustomer(ctx context.Context, id string, input schema.CustomerInput) (*schema.Customer, error) {
	var result struct {
		Data struct {
			Customer schema.Customer `json:"customer"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPatch, "/customers/"+url.PathEscape(id), input, &result); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return &result.Data.Customer, nil
}

// DeleteCustomer deletes a customer record.
func (client *Client) DeleteCustomer(ctx context.Context, id string) error {
	if err := client.writeJSON(ctx, http.MethodDelete, "/customers/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// --- Repairs ---

// Repairs returns all repair tickets.
func (client *Client) Repairs(ctx context.Context) ([]schema.Repair, error) {
	var result struct {
		Data struct {
			Repairs []schema.Repair `json:"repairs"`
		} `json:"data"`
	}
	if err := client.getJSON(ctx, "/repairs", &result); err != nil {
		return nil, fmt.Errorf("repairs: %w", err)
	}
	return result.Data.Repairs, nil
}

// RecentRepairs returns the dashboard's recent-repairs slice.
func (client *Client) RecentRepairs(ctx context.Context) ([]schema.Repair, error) {
	var result struct {
		Data struct {
			Repairs []schema.Repair `json:"repairs"`
		} `json:"data"`
	}
	if err := client.getJSON(ctx, "/repairs/recent", &result); err != nil {
		return nil, fmt.Errorf("recent repairs: %w", err)
	}
	return result.Data.Repairs, nil
}

// Repair returns a single repair ticket by record ID.
func (client *Client) Repair(ctx context.Context, id string) (*schema.Repair, error) {
	var result struct {
		Data struct {
			Repair schema.Repair `json:"repair"`
		} `json:"data"`
	}
	if err := client.getJSON(ctx, "/repairs/"+url.PathEscape(id), &result); err != nil {
		return nil, fmt.Errorf("repair %s: %w", id, err)
	}
	return &result.Data.Repair, nil
}

// CreateRepair creates a repair ticket. The backend assigns the id,
// display number, initial pending status, and timestamps.
func (client *Client) CreateRepair(ctx context.Context, input schema.RepairInput) (*schema.Repair, error) {
	var result struct {
		Data struct {
			Repair schema.Repair `json:"repair"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPost, "/repairs", input, &result); err != nil {
		return nil, fmt.Errorf("create repair: %w", err)
	}
	return &result.Data.Repair, nil
}

// UpdateRepair updates a repair ticket's writable fields. Status is
// not part of RepairInput — use UpdateRepairStatus.
func (client *Client) UpdateRepair(ctx context.Context, id string, input schema.RepairInput) (*schema.Repair, error) {
	var result struct {
		Data struct {
			Repair schema.Repair `json:"repair"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPatch, "/repairs/"+url.PathEscape(id), input, &result); err != nil {
		return nil, fmt.Errorf("update repair %s: %w", id, err)
	}
	return &result.Data.Repair, nil
}

// UpdateRepairStatus issues the status-only PATCH for a repair. Only
// the new status is sent, never the whole record, so concurrent edits
// to other fields are not clobbered. The returned record carries any
// server-computed fields (completedAt, profit).
//
// Transition legality is not checked here — that is the lifecycle
// package's job, and it must happen before this call.
func (client *Client) UpdateRepairStatus(ctx context.Context, id string, status schema.Status) (*schema.Repair, error) {
	requestBody := map[string]schema.Status{"status": status}
	var result struct {
		Data struct {
			Repair schema.Repair `json:"repair"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPatch, "/repairs/"+url.PathEscape(id)+"/status", requestBody, &result); err != nil {
		return nil, fmt.Errorf("update repair %s status: %w", id, err)
	}
	return &result.Data.Repair, nil
}

// DeleteRepair deletes a repair ticket.
func (client *Client) DeleteRepair(ctx context.Context, id string) error {
	if err := client.writeJSON(ctx, http.MethodDelete, "/repairs/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete repair %s: %w", id, err)
	}
	return nil
}

// --- Technicians ---

// Technicians returns all technician accounts.
func (client *Client) Technicians(ctx context.Context) ([]schema.Technician, error) {
	var result struct {
		Data struct {
			Technicians []schema.Technician `json:"technicians"`
		} `json:"data"`
	}
	if err := client.getJSON(ctx, "/technicians", &result); err != nil {
		return nil, fmt.Errorf("technicians: %w", err)
	}
	return result.Data.Technicians, nil
}

// CreateTechnician creates a technician account.
func (client *Client) CreateTechnician(ctx context.Context, input schema.TechnicianInput) (*schema.Technician, error) {
	var result struct {
		Data struct {
			Technician schema.Technician `json:"technician"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPost, "/technicians", input, &result); err != nil {
		return nil, fmt.Errorf("create technician: %w", err)
	}
	return &result.Data.Technician, nil
}

// UpdateTechnician updates a technician account.
func (client *Client) UpdateTechnician(ctx context.Context, id string, input schema.TechnicianInput) (*schema.Technician, error) {
	var result struct {
		Data struct {
			Technician schema.Technician `json:"technician"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPatch, "/technicians/"+url.PathEscape(id), input, &result); err != nil {
		return nil, fmt.Errorf("update technician %s: %w", id, err)
	}
	return &result.Data.Technician, nil
}

// SetTechnicianActive toggles a technician account's active flag via
// the status endpoint.
func (client *Client) SetTechnicianActive(ctx context.Context, id string, active bool) (*schema.Technician, error) {
	requestBody := map[string]bool{"active": active}
	var result struct {
		Data struct {
			Technician schema.Technician `json:"technician"`
		} `json:"data"`
	}
	if err := client.writeJSON(ctx, http.MethodPatch, "/technicians/"+url.PathEscape(id)+"/status", requestBody, &result); err != nil {
		return nil, fmt.Errorf("set technician %s active: %w", id, err)
	}
	return &result.Data.Technician, nil
}

// DeleteTechnician deletes a technician account.
func (client *Client) DeleteTechnician(ctx context.Context, id string) error {
	if err := client.writeJSON(ctx, http.MethodDelete, "/technicians/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete technician %s: %w", id, err)
	}
	return nil
}

// --- Dashboard ---

// DashboardStats returns the aggregate dashboard counters.
func (client *Client) DashboardStats(ctx context.Context) (*schema.DashboardStats, error) {
	var result struct {
		Data schema.DashboardStats `json:"data"`
	}
	if err := client.getJSON(ctx, "/stats/dashboard", &result); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &result.Data, nil
}

// --- Backup ---

// ExportBackup streams the backup blob from GET /backup/export into
// destination, unmodified. The blob is hashed on the fly; the BLAKE3
// digest and byte count are returned for integrity display and
// sidecar verification. The blob itself is opaque to the client.
func (client *Client) ExportBackup(ctx context.Context, destination io.Writer) (digest string, size int64, err error) {
	response, err := client.do(ctx, http.MethodGet, "/backup/export", nil)
	if err != nil {
		return "", 0, fmt.Errorf("backup export: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", 0, client.responseError("backup export", response)
	}

	hasher := blake3.New()
	size, err = io.Copy(io.MultiWriter(destination, hasher), response.Body)
	if err != nil {
		return "", 0, Internal("backup export: streaming blob: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), size, nil
}

// ImportBackup uploads a backup blob to POST /backup/import as
// multipart form data under the field name the backend expects. The
// blob passes through unmodified.
func (client *Client) ImportBackup(ctx context.Context, filename string, blob io.Reader) error {
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	part, err := writer.CreateFormFile("backupFile", filename)
	if err != nil {
		return Internal("backup import: %w", err)
	}
	if _, err := io.Copy(part, blob); err != nil {
		return Internal("backup import: reading blob: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Internal("backup import: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/backup/import", &requestBody)
	if err != nil {
		return Internal("backup import: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	client.setAuthorization(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return Network("backup import: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode/100 != 2 {
		return client.responseError("backup import", response)
	}
	return nil
}

// ResetData calls DELETE /backup/reset, wiping the backend's data.
// The backend restricts this to administrators.
func (client *Client) ResetData(ctx context.Context) error {
	if err := client.writeJSON(ctx, http.MethodDelete, "/backup/reset", nil, nil); err != nil {
		return fmt.Errorf("reset data: %w", err)
	}
	return nil
}

// --- Internals ---

// do builds and executes a request with the bearer header and JSON
// body. Transport-level failures (unreachable host, timeout, context
// deadline) map to the network category; everything that produced an
// HTTP response is returned for status handling by the caller.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) (*http.Response, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		data, err := json.Marshal(requestBody)
		if err != nil {
			return nil, Internal("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return nil, Internal("building request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	client.setAuthorization(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, Internal("request cancelled: %w", err)
		}
		return nil, Network("backend unreachable: %w", err)
	}
	return response, nil
}

// setAuthorization attaches the bearer header when a token exists.
// Anonymous requests (login, pre-hydration) carry no header.
func (client *Client) setAuthorization(request *http.Request) {
	if token := client.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}

// getJSON performs a GET and decodes a 200 response into result.
func (client *Client) getJSON(ctx context.Context, path string, result any) error {
	response, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return client.responseError("GET "+path, response)
	}
	if err := netutil.DecodeResponse(response.Body, result); err != nil {
		return Internal("%w", err)
	}
	return nil
}

// writeJSON performs a mutating request and decodes a 2xx response
// into result when result is non-nil.
func (client *Client) writeJSON(ctx context.Context, method, path string, requestBody, result any) error {
	response, err := client.do(ctx, method, path, requestBody)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode/100 != 2 {
		return client.responseError(method+" "+path, response)
	}
	if result == nil {
		return nil
	}
	if err := netutil.DecodeResponse(response.Body, result); err != nil {
		return Internal("%w", err)
	}
	return nil
}

// responseError maps a non-2xx HTTP response to the error taxonomy.
// 401/403 become permission-denied (an expired token on /auth/me is
// handled by the session guard before messages reach the user), 404
// not-found, 409 conflict; anything else is internal. The backend's
// message body is preserved for diagnostics.
func (client *Client) responseError(operation string, response *http.Response) *Error {
	message := errorMessageOr(response.Body, http.StatusText(response.StatusCode))
	switch response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return PermissionDenied("%s: %s", operation, message)
	case http.StatusNotFound:
		return NotFound("%s: %s", operation, message)
	case http.StatusConflict:
		return Conflict("%s: %s", operation, message)
	default:
		return Internal("%s: HTTP %d: %s", operation, response.StatusCode, message)
	}
}

// errorMessageOr extracts the backend's error message, falling back
// to a default when the body is empty or unreadable.
func errorMessageOr(body io.Reader, fallback string) string {
	if message := netutil.ErrorMessage(body); message != "" {
		return message
	}
	return fallback
}
