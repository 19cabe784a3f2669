// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package policy holds the pure authorization decisions for pages and site
// settings. Decisions are ordered predicate checks over an Actor and a page;
// they never touch the store or the response writer, and denials come back as
// typed apperr values so callers can distinguish "log in first" from "not
// allowed". Actor identity must be resolved from the session-backed user
// lookup, never from request bodies.
package policy

import (
	"time"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/model"
)

// Actor is the identity making a request, possibly anonymous.
type Actor struct {
	Authenticated bool
	Username      string
	Role          string
}

// Anonymous is the actor for requests without a session.
var Anonymous = Actor{}

// IsAdmin reports whether the actor is an authenticated admin.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && a.Role == model.RoleAdmin
}

// owns reports whether the actor is the page's author.
func (a Actor) owns(page model.Page) bool {
	return a.Authenticated && a.Username == page.Author
}

// CanView decides whether the actor may see the page at the given instant.
// Admins and owners always may; everyone else only sees published pages.
func CanView(actor Actor, page model.Page, now time.Time) bool {
	if actor.IsAdmin() || actor.owns(page) {
		return true
	}
	return page.IsPublished(now)
}

// CanEdit decides whether the actor may modify the page.
// Returns nil, or a denial distinguishing missing login from missing rights.
func CanEdit(actor Actor, page model.Page) *apperr.Error {
	if !actor.Authenticated {
		return apperr.AuthenticationRequired()
	}
	if actor.IsAdmin() || actor.owns(page) {
		return nil
	}
	return apperr.Unauthorized()
}

// CanDelete decides whether the actor may delete the page.
// Same rule as editing: owner or admin.
func CanDelete(actor Actor, page model.Page) *apperr.Error {
	return CanEdit(actor, page)
}

// CanCreate decides whether the actor may create a page attributed to the
// submitted author. Pages can only be created in the actor's own name; admins
// are not exempt at creation time (reassignment is an edit-time privilege).
func CanCreate(actor Actor, submittedAuthor string) *apperr.Error {
	if !actor.Authenticated {
		return apperr.AuthenticationRequired()
	}
	if submittedAuthor != actor.Username {
		return apperr.Unauthorized()
	}
	return nil
}

// CanReassignAuthor decides whether the actor may change a page's author on
// edit. Admin only: the original author may not hand the page off themselves.
func CanReassignAuthor(actor Actor) *apperr.Error {
	if !actor.Authenticated {
		return apperr.AuthenticationRequired()
	}
	if !actor.IsAdmin() {
		return apperr.Unauthorized()
	}
	return nil
}

// CanEditSiteInfo decides whether the actor may change site settings.
func CanEditSiteInfo(actor Actor) *apperr.Error {
	if !actor.Authenticated {
		return apperr.AuthenticationRequired()
	}
	if !actor.IsAdmin() {
		return apperr.Unauthorized()
	}
	return nil
}
