// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/olegiv/scms-go/internal/model"
)

func TestListUsers(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "carol", model.RoleUser)
	app.createUser(t, "alice", model.RoleAdmin)
	app.login(t, "alice")

	resp := app.request(t, http.MethodGet, "/api/application-data/user-list", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body UsersResponse
	decodeBody(t, resp, &body)
	if len(body.Users) != 2 || body.Users[0] != "alice" || body.Users[1] != "carol" {
		t.Errorf("users = %v, want [alice carol]", body.Users)
	}
}

// The front office loads the author list before anyone logs in.
func TestListUsers_Anonymous(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "alice", model.RoleUser)

	resp := app.request(t, http.MethodGet, "/api/application-data/user-list", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body UsersResponse
	decodeBody(t, resp, &body)
	if len(body.Users) != 1 || body.Users[0] != "alice" {
		t.Errorf("users = %v, want [alice]", body.Users)
	}
}
