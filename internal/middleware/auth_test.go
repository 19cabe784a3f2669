// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/testutil"
)

func createUser(t *testing.T, db *sql.DB, username, role string) store.User {
	t.Helper()
	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

// loginCookie issues a session cookie carrying the given user id.
func loginCookie(t *testing.T, sm *scs.SessionManager, userID int64) *http.Cookie {
	t.Helper()

	var cookie *http.Cookie
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, userID)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no session cookie issued")
	}
	return cookie
}

func TestLoadUser_NoSession(t *testing.T) {
	db := testutil.TestDB(t)
	sm := scs.New()

	var got *store.User
	h := sm.LoadAndSave(LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got != nil {
		t.Errorf("GetUser = %+v, want nil", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLoadUser_WithSession(t *testing.T) {
	db := testutil.TestDB(t)
	sm := scs.New()
	user := createUser(t, db, "alice", model.RoleUser)

	cookie := loginCookie(t, sm, user.ID)

	var got *store.User
	h := sm.LoadAndSave(LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("GetUser returned nil for a valid session")
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want %q", got.Username, "alice")
	}
}

func TestLoadUser_DeletedUserDestroysSession(t *testing.T) {
	db := testutil.TestDB(t)
	sm := scs.New()

	// Session points at a user id that does not exist
	cookie := loginCookie(t, sm, 999)

	var got *store.User
	var corrupted bool
	h := sm.LoadAndSave(LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
		corrupted = SessionCorrupted(r)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Errorf("GetUser = %+v, want nil for vanished user", got)
	}
	if !corrupted {
		t.Error("SessionCorrupted should report true for a vanished user")
	}
}

func TestRequireAuth_Unauthenticated(t *testing.T) {
	sm := scs.New()
	db := testutil.TestDB(t)

	h := sm.LoadAndSave(LoadUser(sm, db)(RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Code != "AUTHENTICATION_ERROR.UNAUTHENTICATED_USER" {
		t.Errorf("code = %q, want %q", body.Code, "AUTHENTICATION_ERROR.UNAUTHENTICATED_USER")
	}
}

func TestGetActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	actor := GetActor(req)
	if actor.Authenticated {
		t.Error("actor without session should be anonymous")
	}

	user := store.User{ID: 1, Username: "alice", Role: model.RoleAdmin}
	ctx := context.WithValue(req.Context(), ContextKeyUser, user)
	actor = GetActor(req.WithContext(ctx))
	if !actor.Authenticated || actor.Username != "alice" || !actor.IsAdmin() {
		t.Errorf("actor = %+v, want authenticated admin alice", actor)
	}
}
