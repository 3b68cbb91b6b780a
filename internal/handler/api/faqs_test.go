// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, []string{"a"}, &Meta{Language: "en", Total: 1})

	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Meta == nil || resp.Meta.Total != 1 {
		t.Errorf("meta = %+v", resp.Meta)
	}
}

func TestWriteError_NoStore(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNotFound(w, "FAQ not found")

	assertStatusCode(t, w, http.StatusNotFound)
	assertErrorResponse(t, w, "not_found")
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}
}

func TestListFAQs(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs", nil)
	assertStatusCode(t, w, http.StatusOK)

	entries, meta := decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"nie", "ibi", "golden-visa"}) {
		t.Errorf("ids = %v", got)
	}
	if meta.Language != "en" || meta.EffectiveLanguage != "en" || meta.FallbackUsed || !meta.HasDataInCurrentLanguage || meta.Total != 3 {
		t.Errorf("meta = %+v", meta)
	}
}

func TestListFAQs_Filters(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"category", "category=legal", []string{"nie", "golden-visa"}},
		{"category all", "category=all", []string{"nie", "ibi", "golden-visa"}},
		{"area substring", "area=marb", []string{"nie"}},
		{"property type", "property_type=apart", []string{"ibi"}},
		{"search any term", "q=ibi+nie", []string{"nie", "ibi"}},
		{"short terms ignored", "q=a", []string{"nie", "ibi", "golden-visa"}},
		{"combined", "category=tax&q=nie", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodGet, "/api/v1/faqs?"+tt.query, nil)
			assertStatusCode(t, w, http.StatusOK)

			entries, meta := decodeEntries(t, w)
			if got := ids(entries); !slices.Equal(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
			if meta.Total != len(tt.want) {
				t.Errorf("total = %d, want %d", meta.Total, len(tt.want))
			}
		})
	}
}

func TestListFAQs_LanguageFallback(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	// es has entries but no categories.
	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs?lang=es", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, meta := decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"nie-es"}) {
		t.Errorf("es ids = %v", got)
	}
	if meta.FallbackUsed || !meta.CategoryFallbackUsed || !meta.HasDataInCurrentLanguage {
		t.Errorf("es meta = %+v", meta)
	}

	// de has nothing and falls back to en.
	w = doRequest(t, h, http.MethodGet, "/api/v1/de/faqs", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, meta = decodeEntries(t, w)
	if len(entries) != 3 {
		t.Errorf("de entries = %d, want 3", len(entries))
	}
	if meta.Language != "de" || meta.EffectiveLanguage != "en" || !meta.FallbackUsed || meta.HasDataInCurrentLanguage {
		t.Errorf("de meta = %+v", meta)
	}
}

func TestListFAQs_AcceptLanguage(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs", map[string]string{"Accept-Language": "es-ES,en;q=0.5"})
	assertStatusCode(t, w, http.StatusOK)

	_, meta := decodeEntries(t, w)
	if meta.Language != "es" {
		t.Errorf("language = %q, want es", meta.Language)
	}
}

func TestListFAQs_StoreFailure(t *testing.T) {
	src := newMemSource()
	src.setErr(errStoreDown)
	h := newTestRouter(t, src)

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs", nil)
	assertStatusCode(t, w, http.StatusInternalServerError)

	resp := assertErrorResponse(t, w, "internal_error")
	if resp.Error.Message != "Failed to load FAQs" {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if strings.Contains(w.Body.String(), "store down") {
		t.Error("internal error details must not leak")
	}
}

func TestFeaturedFAQs(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs/featured", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, _ := decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"nie", "golden-visa"}) {
		t.Errorf("featured = %v", got)
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/faqs/featured?limit=1", nil)
	entries, _ = decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"nie"}) {
		t.Errorf("featured limit 1 = %v", got)
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/faqs/featured?limit=0", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, _ = decodeEntries(t, w)
	if len(entries) != 0 {
		t.Errorf("featured limit 0 = %v, want none", ids(entries))
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/faqs/featured?limit=abc", nil)
	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "bad_request")
}

func TestVoiceAndKeywordFAQs(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs/voice", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, _ := decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"nie"}) {
		t.Errorf("voice = %v", got)
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/faqs/keywords/TAX", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, _ = decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"nie", "ibi"}) {
		t.Errorf("keyword = %v", got)
	}
}

func TestGetFAQ(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs/ibi", nil)
	assertStatusCode(t, w, http.StatusOK)

	var resp struct {
		Data struct {
			ID       string `json:"id"`
			Question string `json:"question"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.ID != "ibi" || resp.Data.Question != "What is IBI?" {
		t.Errorf("data = %+v", resp.Data)
	}

	w = doRequest(t, h, http.MethodGet, "/api/v1/faqs/missing", nil)
	assertStatusCode(t, w, http.StatusNotFound)
	assertErrorResponse(t, w, "not_found")
}

func TestRelatedFAQs(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs/nie/related", nil)
	assertStatusCode(t, w, http.StatusOK)
	entries, _ := decodeEntries(t, w)
	if got := ids(entries); !slices.Equal(got, []string{"ibi"}) {
		t.Errorf("related = %v", got)
	}

	// No relations and fallback-on-empty off: empty list, not null.
	w = doRequest(t, h, http.MethodGet, "/api/v1/faqs/golden-visa/related", nil)
	assertStatusCode(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty data array", w.Body.String())
	}
}

func TestListCategories(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/categories", nil)
	assertStatusCode(t, w, http.StatusOK)

	var resp struct {
		Data CategoriesResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data.Categories) != 2 {
		t.Fatalf("categories = %+v", resp.Data.Categories)
	}
	if c := resp.Data.Categories[0]; c.Key != "legal" || c.Count != 2 {
		t.Errorf("first category = %+v", c)
	}
	if resp.Data.Names["tax"] != "Tax" {
		t.Errorf("names = %v", resp.Data.Names)
	}
	if resp.Data.Counts["all"] != 3 {
		t.Errorf("counts = %v", resp.Data.Counts)
	}
}

func TestFacets(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/facets", nil)
	assertStatusCode(t, w, http.StatusOK)

	var resp struct {
		Data FacetsResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !slices.Equal(resp.Data.TargetAreas, []string{"Benahavís", "Estepona", "Marbella"}) {
		t.Errorf("areas = %v", resp.Data.TargetAreas)
	}
	if !slices.Equal(resp.Data.PropertyTypes, []string{"Apartment", "Villa"}) {
		t.Errorf("types = %v", resp.Data.PropertyTypes)
	}
}

func TestSchema(t *testing.T) {
	h := newTestRouter(t, newMemSource())

	w := doRequest(t, h, http.MethodGet, "/api/v1/faqs/schema?category=tax", nil)
	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/ld+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var schema struct {
		Type       string `json:"@type"`
		InLanguage string `json:"inLanguage"`
		MainEntity []struct {
			Name string `json:"name"`
		} `json:"mainEntity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &schema); err != nil {
		t.Fatalf("failed to unmarshal schema: %v", err)
	}
	if schema.Type != "FAQPage" || schema.InLanguage != "en" || len(schema.MainEntity) != 1 {
		t.Errorf("schema = %+v", schema)
	}
}
