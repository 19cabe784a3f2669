// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/scms-go/internal/apperr"
)

// ImagesResponse lists the image names available to page editors together
// with the URL prefix they are served from.
type ImagesResponse struct {
	Images []string `json:"images"`
	Path   string   `json:"path"`
}

// ListImages handles GET /api/resources/images. Public; published pages
// reference images by name and visitors resolve them through the path prefix.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.queries.ListImages(r.Context())
	if err != nil {
		slog.Error("listing images", "error", err)
		WriteError(w, apperr.StoreFailure("image"))
		return
	}

	names := make([]string, 0, len(images))
	for _, img := range images {
		names = append(names, img.Name)
	}
	WriteJSON(w, http.StatusOK, ImagesResponse{Images: names, Path: ImagesPath})
}
