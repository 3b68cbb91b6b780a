// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the read-only FAQ REST API and the admin cache endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/costafaq/internal/cache"
	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/middleware"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/seo"
)

// FAQService is the part of *faq.Service the handlers use.
type FAQService interface {
	WorkingSet(ctx context.Context, lang string) (*faq.WorkingSet, error)
	Related(ctx context.Context, ws *faq.WorkingSet, entry model.FAQEntry, limit int) []model.FAQEntry
	Invalidate(ctx context.Context, lang string) error
	InvalidateAll(ctx context.Context) error
	Stats() (cache.Stats, bool)
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	faqs      FAQService
	site      seo.SiteConfig
	languages []string
	jobs      JobRegistry
	logger    *slog.Logger
}

// NewHandler creates a new API handler. languages are the codes the admin
// endpoints accept.
func NewHandler(faqs FAQService, site seo.SiteConfig, languages []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		faqs:      faqs,
		site:      site,
		languages: languages,
		logger:    logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta describes the working set a response was computed from.
type Meta struct {
	Language                 string `json:"language"`
	EffectiveLanguage        string `json:"effective_language"`
	FallbackUsed             bool   `json:"fallback_used"`
	CategoryFallbackUsed     bool   `json:"category_fallback_used"`
	HasDataInCurrentLanguage bool   `json:"has_data_in_current_language"`
	Total                    int    `json:"total"`
}

// newMeta builds response metadata for total items taken from ws.
func newMeta(ws *faq.WorkingSet, total int) *Meta {
	return &Meta{
		Language:                 ws.Language,
		EffectiveLanguage:        ws.EffectiveLanguage,
		FallbackUsed:             ws.FallbackUsed,
		CategoryFallbackUsed:     ws.CategoryFallbackUsed,
		HasDataInCurrentLanguage: ws.HasDataInCurrentLanguage(),
		Total:                    total,
	}
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteError writes an error JSON response. Errors are never cached.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// workingSet loads the working set for the request language. On failure it
// writes the error response and returns nil.
func (h *Handler) workingSet(w http.ResponseWriter, r *http.Request) *faq.WorkingSet {
	lang := middleware.GetLanguage(r)
	ws, err := h.faqs.WorkingSet(r.Context(), lang)
	if err != nil {
		if errors.Is(err, faq.ErrInvalidLanguage) {
			WriteBadRequest(w, faq.InvalidLanguageMessage, map[string]string{"lang": lang})
			return nil
		}
		h.logger.ErrorContext(r.Context(), "loading faqs", "language", lang, "error", err)
		WriteInternalError(w, faq.LoadFailedMessage)
		return nil
	}
	return ws
}

// parseLimit reads the limit query parameter, returning def when it is
// missing. An explicit value must be a non-negative integer.
func parseLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		WriteBadRequest(w, "Invalid limit", map[string]string{"limit": "must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

// filterFromQuery builds a filter from the list query parameters.
func filterFromQuery(r *http.Request) faq.Filter {
	q := r.URL.Query()
	return faq.Filter{
		Category:     q.Get("category"),
		TargetArea:   q.Get("area"),
		PropertyType: q.Get("property_type"),
		Search:       q.Get("q"),
	}
}
