// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/scms-go/internal/apperr"
)

// UsersResponse lists the usernames available as page authors.
type UsersResponse struct {
	Users []string `json:"users"`
}

// ListUsers handles GET /api/application-data/user-list. Public, so the
// front office can offer author names without a login round trip.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.queries.ListUsernames(r.Context())
	if err != nil {
		slog.Error("listing usernames", "error", err)
		WriteError(w, apperr.StoreFailure("user"))
		return
	}
	if usernames == nil {
		usernames = []string{}
	}
	WriteJSON(w, http.StatusOK, UsersResponse{Users: usernames})
}
