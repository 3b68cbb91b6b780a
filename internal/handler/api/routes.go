// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware is a standard HTTP middleware.
type Middleware = func(http.Handler) http.Handler

// RegisterRoutes mounts the FAQ routes on r. Every public route is also
// reachable under a language prefix, e.g. /es/faqs. language resolves the
// request language and runs inside each group so it sees the {lang} param.
func (h *Handler) RegisterRoutes(r chi.Router, language, adminAuth Middleware) {
	public := func(r chi.Router) {
		r.Use(language)
		r.Get("/faqs", h.ListFAQs)
		r.Get("/faqs/featured", h.FeaturedFAQs)
		r.Get("/faqs/voice", h.VoiceFAQs)
		r.Get("/faqs/schema", h.Schema)
		r.Get("/faqs/keywords/{keyword}", h.KeywordFAQs)
		r.Get("/faqs/{slug}", h.GetFAQ)
		r.Get("/faqs/{slug}/related", h.RelatedFAQs)
		r.Get("/categories", h.ListCategories)
		r.Get("/facets", h.Facets)
	}

	r.Group(public)
	r.Route("/{lang:[a-zA-Z][a-zA-Z]}", public)

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminAuth)
		r.Post("/cache/invalidate", h.InvalidateCache)
		r.Get("/cache/stats", h.CacheStats)
		r.Get("/jobs", h.ListJobs)
		r.Post("/jobs/{name}/run", h.RunJob)
	})
}
