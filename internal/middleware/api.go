// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/costafaq/internal/auth"
)

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AdminAuth creates middleware that requires a bearer token matching the
// argon2id tokenHash. With an empty hash every request is refused.
// Admin responses are never cached.
func AdminAuth(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			if tokenHash == "" {
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Admin API is disabled", nil)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing or malformed Authorization header. Use: Bearer <token>", nil)
				return
			}

			valid, err := auth.VerifyToken(token, tokenHash)
			if err != nil {
				slog.ErrorContext(r.Context(), "admin token hash is unusable", "error", err)
				WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token", nil)
				return
			}
			if !valid {
				slog.WarnContext(r.Context(), "rejected admin token", "ip", clientIP(r), "path", r.URL.Path)
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
