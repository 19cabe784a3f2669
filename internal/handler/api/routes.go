// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scms-go/internal/middleware"
)

// Routes builds the API router. The session and user-loading middleware are
// expected to already wrap the parent router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/authentication", func(r chi.Router) {
		loginHandler := http.HandlerFunc(h.Login)
		if h.protection != nil {
			r.With(h.protection.Middleware()).Post("/", loginHandler)
		} else {
			r.Post("/", loginHandler)
		}
		r.Get("/current", h.CurrentSession)
		r.Delete("/current", h.Logout)
	})

	r.Route("/application-data", func(r chi.Router) {
		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.ListPages)
			r.Get("/{id}", h.GetPage)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth())
				r.Post("/", h.CreatePage)
				r.Put("/{id}", h.UpdatePage)
				r.Delete("/{id}", h.DeletePage)
			})
		})

		r.Get("/site-info", h.GetSiteInfo)
		r.With(middleware.RequireAuth()).Put("/site-info", h.UpdateSiteInfo)
		r.Get("/user-list", h.ListUsers)
	})

	r.Get("/resources/images", h.ListImages)

	return r
}
