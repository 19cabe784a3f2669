// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apperr defines the closed set of error kinds that cross the API
// boundary. Handlers map kinds to HTTP statuses and serialize the stable
// machine-readable code plus a human message; raw store/driver errors never
// leave the process unredacted.
package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error.
type Kind string

// The closed kind set.
const (
	KindAuthenticationRequired Kind = "authentication_required"
	KindUnauthorized           Kind = "unauthorized"
	KindInvalidCredentials     Kind = "invalid_credentials"
	KindValidationFailed       Kind = "validation_failed"
	KindNotFound               Kind = "not_found"
	KindStoreFailure           Kind = "store_failure"
	KindCorruptedSession       Kind = "corrupted_session"
)

// Error is a classified application error with a stable wire code.
type Error struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// HTTPStatus maps the error kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAuthenticationRequired, KindUnauthorized, KindInvalidCredentials, KindCorruptedSession:
		return http.StatusUnauthorized
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AuthenticationRequired reports that the action needs a logged-in actor.
func AuthenticationRequired() *Error {
	return &Error{
		Kind:    KindAuthenticationRequired,
		Code:    "AUTHENTICATION_ERROR.UNAUTHENTICATED_USER",
		Message: "authentication required: the user must be logged in",
	}
}

// Unauthorized reports that the actor lacks role or ownership for the action.
func Unauthorized() *Error {
	return &Error{
		Kind:    KindUnauthorized,
		Code:    "AUTHENTICATION_ERROR.UNAUTHORIZED_USER",
		Message: "access denied: the user may not perform this action on the requested resource",
	}
}

// InvalidCredentials reports a failed login. Unknown user and wrong password
// are deliberately indistinguishable to the caller to prevent username
// enumeration.
func InvalidCredentials() *Error {
	return &Error{
		Kind:    KindInvalidCredentials,
		Code:    "AUTHENTICATION_ERROR.INVALID_CREDENTIALS",
		Message: "authentication failed: wrong username or password",
	}
}

// CorruptedSession reports a session whose identity no longer resolves.
// Clients should force a full re-login rather than retry.
func CorruptedSession() *Error {
	return &Error{
		Kind:    KindCorruptedSession,
		Code:    "AUTHENTICATION_ERROR.CORRUPTED_SESSION",
		Message: "session data could not be restored: the session is corrupted",
	}
}

// ValidationFailed reports a field-scoped payload failure. Scope and field are
// folded into the wire code so the caller can highlight the offending field.
func ValidationFailed(scope, field, message string) *Error {
	return &Error{
		Kind:    KindValidationFailed,
		Code:    fmt.Sprintf("VALIDATION_ERROR.%s.%s", strings.ToUpper(scope), strings.ToUpper(field)),
		Message: message,
	}
}

// NotFound reports an absent resource of the given kind.
func NotFound(resourceKind string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    strings.ToUpper(resourceKind) + "_ERROR." + strings.ToUpper(resourceKind) + "_NOT_FOUND",
		Message: fmt.Sprintf("the %s with id = %v does not exist", strings.ToLower(resourceKind), id),
	}
}

// SiteInfoNotFound reports that the site settings record was never initialized.
func SiteInfoNotFound() *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "SITE_INFO_ERROR.SITE_INFO_NOT_FOUND",
		Message: "the site settings are not present in the database",
	}
}

// PageNotFound reports an absent page.
func PageNotFound(id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "PAGE_ERROR.PAGE_NOT_FOUND",
		Message: fmt.Sprintf("the page with id = %d does not exist", id),
	}
}

// StoreFailure reports a persistence failure opaque to the caller.
// The underlying error is not included in the message.
func StoreFailure(scope string) *Error {
	return &Error{
		Kind:    KindStoreFailure,
		Code:    strings.ToUpper(scope) + "_ERROR.GENERIC_ERROR",
		Message: "the operation could not be completed",
	}
}
