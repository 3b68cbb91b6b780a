// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/seo"
)

// WorkingSetLoader returns the working set of a language.
type WorkingSetLoader interface {
	WorkingSet(ctx context.Context, lang string) (*faq.WorkingSet, error)
}

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	faqs        WorkingSetLoader
	languages   []string
	siteURL     string
	disallowAll bool
}

// NewSEOHandler creates a new SEO handler. With disallowAll robots.txt
// blocks every crawler.
func NewSEOHandler(faqs WorkingSetLoader, languages []string, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{
		faqs:        faqs,
		languages:   languages,
		siteURL:     siteURL,
		disallowAll: disallowAll,
	}
}

// Sitemap handles GET /sitemap.xml. Languages served through the default
// language fallback are left out so the same entries are not listed twice.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.siteURL)

	failed := 0
	for _, lang := range h.languages {
		ws, err := h.faqs.WorkingSet(r.Context(), lang)
		if err != nil {
			failed++
			slog.ErrorContext(r.Context(), "sitemap: loading faqs", "language", lang, "error", err)
			continue
		}
		if ws.FallbackUsed {
			continue
		}
		categories := ws.Categories
		if ws.CategoryFallbackUsed {
			categories = nil
		}
		b.AddLanguage(lang, ws.FAQs, categories)
	}

	if failed > 0 && failed == len(h.languages) {
		http.Error(w, "Failed to build sitemap", http.StatusInternalServerError)
		return
	}

	body, err := b.Build()
	if err != nil {
		slog.ErrorContext(r.Context(), "sitemap: encoding", "error", err)
		http.Error(w, "Failed to build sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.disallowAll,
		Languages:   h.languages,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(body))
}
