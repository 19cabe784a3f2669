// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session wires the author login sessions to the SQLite-backed
// session store shared with the rest of the application data.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Lifetime is how long an author stays logged in before the session
// expires and the next request is treated as anonymous.
const Lifetime = 24 * time.Hour

// CookieName identifies the session cookie issued on login.
const CookieName = "scms_session"

// New builds the session manager backed by the sessions table of the given
// database. Cookies are marked Secure outside development so a deployment
// behind TLS never sends the token in clear.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = Lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}
