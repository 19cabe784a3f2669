// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/session"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/testutil"
)

const testPassword = "correct horse battery staple"

// testNow is the fixed clock all handler tests run against.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// testApp is a fully wired API server against a temp database.
type testApp struct {
	db      *sql.DB
	queries *store.Queries
	handler *Handler
	server  *httptest.Server
	client  *http.Client
}

// newTestApp builds the handler stack the way cmd/scms does, with a fixed
// clock and a cookie-keeping client.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.TestDB(t)

	sm := session.New(db, true)
	events := service.NewEventService(db)

	h := NewHandler(db, sm, events, nil)
	h.now = func() time.Time { return testNow }

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm, db))
	r.Mount("/api", h.Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	client := &http.Client{Jar: jar}

	return &testApp{
		db:      db,
		queries: store.New(db),
		handler: h,
		server:  server,
		client:  client,
	}
}

// setNow moves the handler clock to the given instant.
func (a *testApp) setNow(t *testing.T, now time.Time) {
	t.Helper()
	a.handler.now = func() time.Time { return now }
}

// createUser inserts a user with the shared test password.
func (a *testApp) createUser(t *testing.T, username, role string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u, err := a.queries.CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    testNow.Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return u
}

// createPage inserts a page directly through the store.
func (a *testApp) createPage(t *testing.T, page model.Page) model.Page {
	t.Helper()
	created, err := a.queries.CreatePage(context.Background(), page)
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	return created
}

// login signs the client's cookie jar in as the given user.
func (a *testApp) login(t *testing.T, username string) {
	t.Helper()
	resp := a.request(t, http.MethodPost, "/api/authentication", LoginRequest{
		Username: username,
		Password: testPassword,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login as %q: status %d, body %s", username, resp.StatusCode, body)
	}
}

// logout ends the client's session.
func (a *testApp) logout(t *testing.T) {
	t.Helper()
	resp := a.request(t, http.MethodDelete, "/api/authentication/current", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
}

// request performs an HTTP request with an optional JSON body.
func (a *testApp) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// decodeBody decodes the response body into dst and closes it.
func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}

// wireError is the decoded shape of a single error response.
type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// assertWireError checks the response status and error code, closing the body.
func assertWireError(t *testing.T, resp *http.Response, wantStatus int, wantCode string) {
	t.Helper()
	if resp.StatusCode != wantStatus {
		t.Errorf("status = %d, want %d", resp.StatusCode, wantStatus)
	}
	var e wireError
	decodeBody(t, resp, &e)
	if e.Code != wantCode {
		t.Errorf("code = %q, want %q", e.Code, wantCode)
	}
}
