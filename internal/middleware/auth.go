// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and
// request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/policy"
	"github.com/olegiv/scms-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for user data.
const (
	ContextKeyUser             ContextKey = "user"
	ContextKeyCorruptedSession ContextKey = "corrupted_session"
)

// Session keys for storing user data.
const (
	SessionKeyUserID = "user_id"
)

// LoadUser creates middleware that loads the current user into the request
// context when a session carries a user id. Requests without a session pass
// through untouched. A session whose user no longer exists is destroyed so a
// stale cookie cannot linger.
func LoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				// The account behind the session is gone. Drop the session
				// and flag the request so handlers can report it.
				_ = sm.Destroy(r.Context())
				ctx := context.WithValue(r.Context(), ContextKeyCorruptedSession, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth creates middleware that rejects unauthenticated requests with a
// JSON 401. Must run after LoadUser.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r) == nil {
				writeError(w, apperr.AuthenticationRequired())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionCorrupted reports whether the request arrived with a session whose
// user no longer exists.
func SessionCorrupted(r *http.Request) bool {
	corrupted, ok := r.Context().Value(ContextKeyCorruptedSession).(bool)
	return ok && corrupted
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetActor builds the authorization actor for the current request. Requests
// without a logged-in user map to the anonymous actor.
func GetActor(r *http.Request) policy.Actor {
	user := GetUser(r)
	if user == nil {
		return policy.Anonymous
	}
	return policy.Actor{
		Authenticated: true,
		Username:      user.Username,
		Role:          user.Role,
	}
}

// GetUserIDPtr returns the current user's id as a nullable value for event
// logging, unset when no user is in context.
func GetUserIDPtr(r *http.Request) sql.NullInt64 {
	if user := GetUser(r); user != nil {
		return sql.NullInt64{Int64: user.ID, Valid: true}
	}
	return sql.NullInt64{}
}

func writeError(w http.ResponseWriter, appErr *apperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(appErr)
}
