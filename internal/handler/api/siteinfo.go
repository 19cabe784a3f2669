// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/policy"
)

// SiteInfoRequest is the request body for updating the site settings.
type SiteInfoRequest struct {
	SiteName string `json:"siteName"`
}

// GetSiteInfo handles GET /api/application-data/site-info. Public.
func (h *Handler) GetSiteInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.queries.GetSiteInfo(r.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, apperr.SiteInfoNotFound())
			return
		}
		slog.Error("loading site info", "error", err)
		WriteError(w, apperr.StoreFailure("site_info"))
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// UpdateSiteInfo handles PUT /api/application-data/site-info. Admin only.
func (h *Handler) UpdateSiteInfo(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r)
	if appErr := policy.CanEditSiteInfo(actor); appErr != nil {
		WriteError(w, appErr)
		return
	}

	var req SiteInfoRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		WriteError(w, appErr)
		return
	}

	if req.SiteName == "" {
		WriteValidationErrors(w, []*apperr.Error{
			apperr.ValidationFailed("site_info", "siteName", "site name must not be empty"),
		})
		return
	}

	if err := h.queries.UpdateSiteName(r.Context(), req.SiteName); err != nil {
		slog.Error("updating site name", "error", err)
		WriteError(w, apperr.StoreFailure("site_info"))
		return
	}

	_ = h.events.LogConfigEvent(r.Context(), model.EventLevelInfo, "site name updated",
		middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"site_name": req.SiteName})

	w.WriteHeader(http.StatusNoContent)
}
