// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
)

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse describes the logged-in user.
type SessionResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login handles POST /api/authentication.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) != nil {
		WriteJSON(w, http.StatusBadRequest, &apperr.Error{
			Kind:    apperr.KindValidationFailed,
			Code:    "AUTHENTICATION_ERROR.ALREADY_LOGGED_IN",
			Message: "a session is already active, log out first",
		})
		return
	}

	var req LoginRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		WriteError(w, appErr)
		return
	}

	var errs []*apperr.Error
	if req.Username == "" {
		errs = append(errs, apperr.ValidationFailed("authentication", "username", "username must not be empty"))
	}
	if req.Password == "" {
		errs = append(errs, apperr.ValidationFailed("authentication", "password", "password must not be empty"))
	}
	if len(errs) > 0 {
		WriteValidationErrors(w, errs)
		return
	}

	ip := middleware.GetClientIP(r)

	if h.protection != nil {
		if locked, remaining := h.protection.IsAccountLocked(req.Username); locked {
			slog.Warn("login attempt on locked account",
				"username", req.Username,
				"remaining", remaining.Round(time.Second),
				"ip", ip,
			)
			WriteError(w, apperr.InvalidCredentials())
			return
		}
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("looking up user at login", "error", err)
			WriteError(w, apperr.StoreFailure("authentication"))
			return
		}
		// Burn a comparison so a missing user costs the same as a wrong password
		_, _ = auth.CheckPassword(req.Password, auth.DummyHash)
		h.failLogin(w, r, req.Username, ip)
		return
	}

	if ok, err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil || !ok {
		h.failLogin(w, r, req.Username, ip)
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(req.Username)
	}

	// Upgrade the stored hash if the cost parameters have changed
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Warn("rehashing password", "error", err, "user_id", user.ID)
			}
		}
	}

	// Rotate the session token to prevent session fixation
	if err := h.sm.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token", "error", err)
		WriteError(w, apperr.StoreFailure("authentication"))
		return
	}
	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, h.now().UTC().Format(time.RFC3339)); err != nil {
		slog.Warn("recording last login", "error", err, "user_id", user.ID)
	}

	_ = h.events.LogAuthEvent(r.Context(), model.EventLevelInfo, "user logged in",
		sql.NullInt64{Int64: user.ID, Valid: true}, ip,
		map[string]any{"username": user.Username})

	WriteJSON(w, http.StatusOK, SessionResponse{Username: user.Username, Role: user.Role})
}

// failLogin records the failure and answers with the credentials error. The
// response is identical for unknown users and wrong passwords.
func (h *Handler) failLogin(w http.ResponseWriter, r *http.Request, username, ip string) {
	if h.protection != nil {
		if locked, duration := h.protection.RecordFailedAttempt(username); locked {
			_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning, "account locked",
				sql.NullInt64{}, ip,
				map[string]any{"username": username, "duration": duration.String()})
		}
	}

	_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning, "failed login attempt",
		sql.NullInt64{}, ip,
		map[string]any{"username": username})

	WriteError(w, apperr.InvalidCredentials())
}

// Logout handles DELETE /api/authentication/current.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteJSON(w, http.StatusBadRequest, &apperr.Error{
			Kind:    apperr.KindValidationFailed,
			Code:    "AUTHENTICATION_ERROR.NO_SESSION_ACTIVE",
			Message: "no session is active",
		})
		return
	}

	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
		WriteError(w, apperr.StoreFailure("authentication"))
		return
	}

	_ = h.events.LogAuthEvent(r.Context(), model.EventLevelInfo, "user logged out",
		sql.NullInt64{Int64: user.ID, Valid: true}, middleware.GetClientIP(r),
		map[string]any{"username": user.Username})

	w.WriteHeader(http.StatusNoContent)
}

// CurrentSession handles GET /api/authentication/current.
func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	// A session whose user vanished gets its own error so the client can
	// drop the stale state instead of offering a login retry.
	if middleware.SessionCorrupted(r) {
		WriteError(w, apperr.CorruptedSession())
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		WriteError(w, apperr.AuthenticationRequired())
		return
	}

	WriteJSON(w, http.StatusOK, SessionResponse{Username: user.Username, Role: user.Role})
}
