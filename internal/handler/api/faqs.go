// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/seo"
)

// ListFAQs handles GET /api/v1/faqs.
// Query: category, area, property_type, q.
func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	entries := filterFromQuery(r).Apply(ws.FAQs)
	WriteSuccess(w, entries, newMeta(ws, len(entries)))
}

// FeaturedFAQs handles GET /api/v1/faqs/featured.
func (h *Handler) FeaturedFAQs(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, faq.DefaultFeaturedLimit)
	if !ok {
		return
	}
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	entries := faq.Featured(ws.FAQs, limit)
	WriteSuccess(w, entries, newMeta(ws, len(entries)))
}

// VoiceFAQs handles GET /api/v1/faqs/voice.
func (h *Handler) VoiceFAQs(w http.ResponseWriter, r *http.Request) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	entries := faq.VoiceSearch(ws.FAQs)
	WriteSuccess(w, entries, newMeta(ws, len(entries)))
}

// KeywordFAQs handles GET /api/v1/faqs/keywords/{keyword}.
func (h *Handler) KeywordFAQs(w http.ResponseWriter, r *http.Request) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	entries := faq.ByKeyword(ws.FAQs, chi.URLParam(r, "keyword"))
	WriteSuccess(w, entries, newMeta(ws, len(entries)))
}

// GetFAQ handles GET /api/v1/faqs/{slug}.
func (h *Handler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	ws, entry, ok := h.requireEntry(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, entry, newMeta(ws, 1))
}

// RelatedFAQs handles GET /api/v1/faqs/{slug}/related.
func (h *Handler) RelatedFAQs(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, faq.DefaultRelatedLimit)
	if !ok {
		return
	}
	ws, entry, ok := h.requireEntry(w, r)
	if !ok {
		return
	}

	related := h.faqs.Related(r.Context(), ws, entry, limit)
	WriteSuccess(w, related, newMeta(ws, len(related)))
}

// requireEntry finds the {slug} entry in the working set, writing 404 when absent.
func (h *Handler) requireEntry(w http.ResponseWriter, r *http.Request) (*faq.WorkingSet, model.FAQEntry, bool) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return nil, model.FAQEntry{}, false
	}

	entry, err := ws.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, faq.ErrNotFound) {
			WriteNotFound(w, "FAQ not found")
		} else {
			WriteInternalError(w, faq.LoadFailedMessage)
		}
		return nil, model.FAQEntry{}, false
	}
	return ws, entry, true
}

// CategoryResponse is a category with its entry count.
type CategoryResponse struct {
	model.FAQCategory
	Count int `json:"count"`
}

// CategoriesResponse is the payload of GET /api/v1/categories.
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Names      map[string]string  `json:"names"`
	Counts     map[string]int     `json:"counts"`
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	cats := make([]CategoryResponse, 0, len(ws.Categories))
	for _, c := range ws.Categories {
		cats = append(cats, CategoryResponse{FAQCategory: c, Count: ws.CategoryCount(c.Key)})
	}

	WriteSuccess(w, CategoriesResponse{
		Categories: cats,
		Names:      ws.CategoryNames(),
		Counts:     ws.CategoryCounts,
	}, newMeta(ws, len(cats)))
}

// FacetsResponse lists the selector options for the filters.
type FacetsResponse struct {
	TargetAreas   []string `json:"target_areas"`
	PropertyTypes []string `json:"property_types"`
}

// Facets handles GET /api/v1/facets.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	WriteSuccess(w, FacetsResponse{
		TargetAreas:   faq.TargetAreas(ws.FAQs),
		PropertyTypes: faq.PropertyTypes(ws.FAQs),
	}, newMeta(ws, len(ws.FAQs)))
}

// Schema handles GET /api/v1/faqs/schema. It accepts the list filters and
// returns FAQPage JSON-LD for the matching entries.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	ws := h.workingSet(w, r)
	if ws == nil {
		return
	}

	entries := filterFromQuery(r).Apply(ws.FAQs)
	body, err := seo.BuildFAQPageSchema(ws.EffectiveLanguage, entries, h.site)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "building faq schema", "error", err)
		WriteInternalError(w, "Failed to build schema")
		return
	}

	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
