// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// CacheControl adds a public Cache-Control header to successful GET responses.
// Responses also vary on the headers language negotiation reads.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
				w.Header().Add("Vary", "Accept-Language")
				w.Header().Add("Vary", "Cookie")
			}
			next.ServeHTTP(w, r)
		})
	}
}
