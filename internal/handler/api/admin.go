// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"slices"

	"github.com/olegiv/costafaq/internal/cache"
	"github.com/olegiv/costafaq/internal/model"
)

// InvalidateResponse reports what was invalidated.
type InvalidateResponse struct {
	Invalidated []string `json:"invalidated"`
}

// InvalidateCache handles POST /api/v1/admin/cache/invalidate.
// With ?lang=xx only that language is dropped; without it every language is.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		if err := h.faqs.InvalidateAll(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "invalidating faq cache", "error", err)
			WriteInternalError(w, "Failed to invalidate cache")
			return
		}
		h.logger.InfoContext(r.Context(), "faq cache invalidated", "scope", "all")
		WriteSuccess(w, InvalidateResponse{Invalidated: h.languages}, nil)
		return
	}

	lang := model.NormalizeLangCode(raw)
	if lang == "" || !slices.Contains(h.languages, lang) {
		WriteBadRequest(w, "Unsupported language", map[string]string{"lang": raw})
		return
	}
	if err := h.faqs.Invalidate(r.Context(), lang); err != nil {
		h.logger.ErrorContext(r.Context(), "invalidating faq cache", "language", lang, "error", err)
		WriteInternalError(w, "Failed to invalidate cache")
		return
	}
	h.logger.InfoContext(r.Context(), "faq cache invalidated", "scope", lang)
	WriteSuccess(w, InvalidateResponse{Invalidated: []string{lang}}, nil)
}

// CacheStats handles GET /api/v1/admin/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	stats, ok := h.faqs.Stats()
	if !ok {
		WriteSuccess(w, cache.Stats{Backend: "unknown"}, nil)
		return
	}
	WriteSuccess(w, stats, nil)
}
