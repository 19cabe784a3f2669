// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST handlers for the CMS.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/store"
)

// ImagesPath is the public URL prefix where uploaded images are served.
const ImagesPath = "/static/images/"

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db         *sql.DB
	queries    *store.Queries
	sm         *scs.SessionManager
	events     *service.EventService
	protection *middleware.LoginProtection

	// now is the clock used for status resolution, injectable in tests.
	now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, sm *scs.SessionManager, events *service.EventService, protection *middleware.LoginProtection) *Handler {
	return &Handler{
		db:         db,
		queries:    store.New(db),
		sm:         sm,
		events:     events,
		protection: protection,
		now:        time.Now,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a single application error with its mapped status code.
func WriteError(w http.ResponseWriter, appErr *apperr.Error) {
	WriteJSON(w, appErr.HTTPStatus(), appErr)
}

// ValidationErrorsResponse wraps the list of field-scoped validation failures.
type ValidationErrorsResponse struct {
	Errors []*apperr.Error `json:"errors"`
}

// WriteValidationErrors writes the collected validation failures as a 400.
func WriteValidationErrors(w http.ResponseWriter, errs []*apperr.Error) {
	WriteJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Errors: errs})
}

// decodeJSON decodes a request body into dst, returning a wire error on failure.
func decodeJSON(r *http.Request, dst any) *apperr.Error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.ValidationFailed("request", "body", "invalid request body")
	}
	return nil
}
