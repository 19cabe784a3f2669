// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/policy"
	"github.com/olegiv/scms-go/internal/validate"
)

// SectionResponse is a content section in API responses.
type SectionResponse struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PageResponse represents a page in API responses. Dates travel as
// YYYY-MM-DD strings and status is derived from the publication date.
type PageResponse struct {
	ID              int64             `json:"id"`
	Title           string            `json:"title"`
	Author          string            `json:"author"`
	CreationDate    string            `json:"creationDate"`
	PublicationDate *string           `json:"publicationDate"`
	Status          string            `json:"status"`
	Content         []SectionResponse `json:"content"`
}

// PagesResponse is the envelope for the page listing.
type PagesResponse struct {
	Pages []PageResponse `json:"pages"`
}

// PageRequest is the request body for creating or updating a page.
type PageRequest struct {
	Title           string                  `json:"title"`
	Author          string                  `json:"author"`
	CreationDate    string                  `json:"creationDate"`
	PublicationDate *string                 `json:"publicationDate"`
	Content         []validate.SectionInput `json:"content"`
}

func (h *Handler) pageToResponse(p model.Page) PageResponse {
	resp := PageResponse{
		ID:           p.ID,
		Title:        p.Title,
		Author:       p.Author,
		CreationDate: model.FormatDate(p.CreationDate),
		Status:       p.Status(h.now()),
		Content:      make([]SectionResponse, 0, len(p.Content)),
	}
	if p.PublicationDate != nil {
		s := model.FormatDate(*p.PublicationDate)
		resp.PublicationDate = &s
	}
	for _, sec := range p.Content {
		resp.Content = append(resp.Content, SectionResponse{ID: sec.ID, Type: sec.Type, Value: sec.Value})
	}
	return resp
}

// requestToPage converts a validated request body to a model page. Dates are
// known to parse at this point.
func requestToPage(req PageRequest) model.Page {
	page := model.Page{
		Title:  req.Title,
		Author: req.Author,
	}
	page.CreationDate, _ = model.ParseDate(req.CreationDate)
	if req.PublicationDate != nil {
		d, _ := model.ParseDate(*req.PublicationDate)
		page.PublicationDate = &d
	}
	for _, sec := range req.Content {
		page.Content = append(page.Content, model.Section{Type: sec.Type, Value: sec.Value})
	}
	return page
}

// ListPages handles GET /api/application-data/pages. Visitors get published
// pages only; authenticated users additionally get their own drafts and
// scheduled pages, and admins get everything.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		slog.Error("listing pages", "error", err)
		WriteError(w, apperr.StoreFailure("page"))
		return
	}

	actor := middleware.GetActor(r)
	now := h.now()

	visible := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		if policy.CanView(actor, p, now) {
			visible = append(visible, h.pageToResponse(p))
		}
	}
	WriteJSON(w, http.StatusOK, PagesResponse{Pages: visible})
}

// GetPage handles GET /api/application-data/pages/{id}.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.fetchPage(w, r)
	if !ok {
		return
	}

	actor := middleware.GetActor(r)
	if !policy.CanView(actor, page, h.now()) {
		// Hidden pages answer like protected ones rather than confirming
		// their existence to the wrong account.
		if actor.Authenticated {
			WriteError(w, apperr.Unauthorized())
		} else {
			WriteError(w, apperr.AuthenticationRequired())
		}
		return
	}

	WriteJSON(w, http.StatusOK, h.pageToResponse(page))
}

// CreatePage handles POST /api/application-data/pages.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r)

	var req PageRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		WriteError(w, appErr)
		return
	}

	// The author of a new page must be the account creating it, admins
	// included.
	if appErr := policy.CanCreate(actor, req.Author); appErr != nil {
		WriteError(w, appErr)
		return
	}

	if !h.validatePageRequest(w, r, req) {
		return
	}

	created, err := h.queries.CreatePage(r.Context(), requestToPage(req))
	if err != nil {
		slog.Error("creating page", "error", err)
		WriteError(w, apperr.StoreFailure("page"))
		return
	}

	_ = h.events.LogPageEvent(r.Context(), model.EventLevelInfo, "page created",
		middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"page_id": created.ID, "title": created.Title})

	WriteJSON(w, http.StatusCreated, map[string]int64{"id": created.ID})
}

// UpdatePage handles PUT /api/application-data/pages/{id}.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.fetchPage(w, r)
	if !ok {
		return
	}

	actor := middleware.GetActor(r)
	if appErr := policy.CanEdit(actor, existing); appErr != nil {
		WriteError(w, appErr)
		return
	}

	var req PageRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		WriteError(w, appErr)
		return
	}

	// Handing the page to another author is an admin-only move.
	if req.Author != existing.Author {
		if appErr := policy.CanReassignAuthor(actor); appErr != nil {
			WriteError(w, appErr)
			return
		}
	}

	if !h.validatePageRequest(w, r, req) {
		return
	}

	page := requestToPage(req)
	page.ID = existing.ID

	if _, err := h.queries.UpdatePage(r.Context(), page); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, apperr.PageNotFound(existing.ID))
			return
		}
		slog.Error("updating page", "error", err, "page_id", existing.ID)
		WriteError(w, apperr.StoreFailure("page"))
		return
	}

	_ = h.events.LogPageEvent(r.Context(), model.EventLevelInfo, "page updated",
		middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"page_id": existing.ID, "title": page.Title})

	w.WriteHeader(http.StatusNoContent)
}

// DeletePage handles DELETE /api/application-data/pages/{id}.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.fetchPage(w, r)
	if !ok {
		return
	}

	actor := middleware.GetActor(r)
	if appErr := policy.CanDelete(actor, existing); appErr != nil {
		WriteError(w, appErr)
		return
	}

	if err := h.queries.DeletePage(r.Context(), existing.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, apperr.PageNotFound(existing.ID))
			return
		}
		slog.Error("deleting page", "error", err, "page_id", existing.ID)
		WriteError(w, apperr.StoreFailure("page"))
		return
	}

	_ = h.events.LogPageEvent(r.Context(), model.EventLevelInfo, "page deleted",
		middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"page_id": existing.ID, "title": existing.Title})

	w.WriteHeader(http.StatusNoContent)
}

// fetchPage resolves the {id} URL parameter to a stored page, writing the
// not-found error itself when the lookup fails.
func (h *Handler) fetchPage(w http.ResponseWriter, r *http.Request) (model.Page, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, apperr.PageNotFound(0))
		return model.Page{}, false
	}

	page, err := h.queries.GetPageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, apperr.PageNotFound(id))
			return model.Page{}, false
		}
		slog.Error("loading page", "error", err, "page_id", id)
		WriteError(w, apperr.StoreFailure("page"))
		return model.Page{}, false
	}
	return page, true
}

// validatePageRequest runs content validation and writes the error list on
// failure. Returns true when the request is valid.
func (h *Handler) validatePageRequest(w http.ResponseWriter, r *http.Request, req PageRequest) bool {
	usernames, err := h.queries.ListUsernames(r.Context())
	if err != nil {
		slog.Error("listing usernames for validation", "error", err)
		WriteError(w, apperr.StoreFailure("page"))
		return false
	}

	errs := validate.Page(validate.PageInput{
		Title:           req.Title,
		Author:          req.Author,
		CreationDate:    req.CreationDate,
		PublicationDate: req.PublicationDate,
		Content:         req.Content,
	}, usernames)
	if len(errs) > 0 {
		WriteValidationErrors(w, errs)
		return false
	}
	return true
}
