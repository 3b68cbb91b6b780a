// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for language negotiation,
// rate limiting and admin authentication.
package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/olegiv/costafaq/internal/logging"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/session"
)

// ContextKey is a typed key for request context values.
type ContextKey string

// ContextKeyLanguage holds the resolved language code.
const ContextKeyLanguage ContextKey = "language"

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	// Supported language codes. The default language is always supported.
	Supported []string

	// Sessions remembers an explicit ?lang= choice. Optional; when set,
	// its LoadAndSave middleware must run before Language.
	Sessions *scs.SessionManager
}

// Language creates middleware that resolves the content language for the request.
// Priority order:
// 1. Query parameter ?lang=XX (explicit switch, remembered in the session)
// 2. URL parameter {lang} from chi router (e.g., /es/faq)
// 3. Session preference
// 4. Accept-Language header
// 5. Default language
//
// Unknown or unsupported codes at any step are ignored.
func Language(cfg LanguageConfig) func(http.Handler) http.Handler {
	supported := []string{model.DefaultLanguage}
	for _, code := range cfg.Supported {
		if code = model.NormalizeLangCode(code); code != "" && !slices.Contains(supported, code) {
			supported = append(supported, code)
		}
	}

	// The first tag is the matcher's fallback.
	tags := make([]language.Tag, len(supported))
	for i, code := range supported {
		tags[i] = language.Make(code)
	}
	matcher := language.NewMatcher(tags)

	lookup := func(raw string) string {
		code := model.NormalizeLangCode(raw)
		if code != "" && slices.Contains(supported, code) {
			return code
		}
		return ""
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			code := lookup(r.URL.Query().Get("lang"))
			if code != "" && cfg.Sessions != nil {
				cfg.Sessions.Put(ctx, session.LanguageKey, code)
			}

			if code == "" {
				code = lookup(chi.URLParam(r, "lang"))
			}
			if code == "" && cfg.Sessions != nil {
				code = lookup(cfg.Sessions.GetString(ctx, session.LanguageKey))
			}
			if code == "" {
				code = matchAcceptLanguage(matcher, supported, r.Header.Get("Accept-Language"))
			}
			if code == "" {
				code = model.DefaultLanguage
			}

			w.Header().Set("Content-Language", code)
			next.ServeHTTP(w, r.WithContext(WithLanguage(ctx, code)))
		})
	}
}

// matchAcceptLanguage returns the supported code that best matches the
// Accept-Language header, or "" when nothing matches.
func matchAcceptLanguage(matcher language.Matcher, supported []string, header string) string {
	if header == "" {
		return ""
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return ""
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return ""
	}
	return supported[idx]
}

// WithLanguage stores the language code in ctx, for handlers and log records.
func WithLanguage(ctx context.Context, code string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyLanguage, code)
	return logging.WithLanguage(ctx, code)
}

// GetLanguage returns the language resolved for the request, or the default
// language when the Language middleware did not run.
func GetLanguage(r *http.Request) string {
	if code, ok := r.Context().Value(ContextKeyLanguage).(string); ok && code != "" {
		return code
	}
	return model.DefaultLanguage
}
