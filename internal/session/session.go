// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the cookie session used to remember a
// visitor's content language.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// LanguageKey is the session key holding the selected language code.
const LanguageKey = "lang"

// New creates a session manager. SQLite databases keep sessions in the
// sessions table; any other driver falls back to an in-process store.
func New(db *sql.DB, driver string, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil && driver == "sqlite" {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = 30 * 24 * time.Hour
	sm.IdleTimeout = 7 * 24 * time.Hour
	sm.Cookie.Name = "costafaq_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Persist = true
	sm.Cookie.Secure = !isDev

	return sm
}
