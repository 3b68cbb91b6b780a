// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/costafaq/internal/auth"
	"github.com/olegiv/costafaq/internal/cache"
	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/middleware"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/seo"
)

const testToken = "admin-token"

var (
	tokenHashOnce sync.Once
	tokenHash     string
)

func testTokenHash(t *testing.T) string {
	t.Helper()
	tokenHashOnce.Do(func() {
		h, err := auth.HashToken(testToken)
		if err != nil {
			t.Fatalf("HashToken: %v", err)
		}
		tokenHash = h
	})
	return tokenHash
}

// memSource is an in-memory faq.Source.
type memSource struct {
	mu      sync.Mutex
	faqs    map[string][]model.FAQEntry
	cats    map[string][]model.FAQCategory
	related map[string][]model.FAQEntry
	err     error
	loads   int
}

func (s *memSource) ListFAQs(_ context.Context, lang string) ([]model.FAQEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.faqs[lang], nil
}

func (s *memSource) ListCategories(_ context.Context, lang string) ([]model.FAQCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.cats[lang], nil
}

func (s *memSource) ListRelated(_ context.Context, faqID string, limit int) ([]model.FAQEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel := s.related[faqID]
	if len(rel) > limit {
		rel = rel[:limit]
	}
	return rel, nil
}

func (s *memSource) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func entry(id, lang, category string, sortOrder int, mod func(*model.FAQEntry)) model.FAQEntry {
	e := model.FAQEntry{
		ID:            id,
		Language:      lang,
		Category:      category,
		Slug:          id,
		Question:      "Question " + id,
		AnswerShort:   "Answer " + id,
		Tags:          []string{},
		Keywords:      []string{},
		VoiceQueries:  []string{},
		TargetAreas:   []string{},
		PropertyTypes: []string{},
		SortOrder:     sortOrder,
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if mod != nil {
		mod(&e)
	}
	return e
}

func newMemSource() *memSource {
	nie := entry("nie", "en", "legal", 1, func(e *model.FAQEntry) {
		e.Question = "What is an NIE number?"
		e.IsFeatured = true
		e.Keywords = []string{"NIE", "tax number"}
		e.VoiceQueries = []string{"how do I get an nie"}
		e.TargetAreas = []string{"Marbella", "Estepona"}
		e.PropertyTypes = []string{"Villa"}
	})
	ibi := entry("ibi", "en", "tax", 2, func(e *model.FAQEntry) {
		e.Question = "What is IBI?"
		e.Keywords = []string{"property tax"}
		e.TargetAreas = []string{"Benahavís"}
		e.PropertyTypes = []string{"Apartment"}
	})
	visa := entry("golden-visa", "en", "legal", 3, func(e *model.FAQEntry) {
		e.IsFeatured = true
	})

	return &memSource{
		faqs: map[string][]model.FAQEntry{
			"en": {nie, ibi, visa},
			"es": {entry("nie-es", "es", "legal", 1, nil)},
		},
		cats: map[string][]model.FAQCategory{
			"en": {
				{ID: "c1", Key: "legal", Language: "en", Name: "Legal"},
				{ID: "c2", Key: "tax", Language: "en", Name: "Tax"},
			},
		},
		related: map[string][]model.FAQEntry{
			"nie": {ibi},
		},
	}
}

// newTestRouter wires the API the way serve does, over src.
func newTestRouter(t *testing.T, src faq.Source, opts ...func(*Handler)) http.Handler {
	t.Helper()

	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := faq.NewService(src, mem, faq.ServiceOptions{TTL: time.Minute, Logger: logger})
	langs := []string{"en", "es", "de"}
	h := NewHandler(svc, seo.SiteConfig{SiteURL: "https://faq.example", SiteName: "Costa FAQ"}, langs, logger)
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		h.RegisterRoutes(r,
			middleware.Language(middleware.LanguageConfig{Supported: langs}),
			middleware.AdminAuth(testTokenHash(t)),
		)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code %q, got %q", expectedCode, resp.Error.Code)
	}
	return resp
}

// decodeEntries decodes a list response.
func decodeEntries(t *testing.T, w *httptest.ResponseRecorder) ([]model.FAQEntry, Meta) {
	t.Helper()
	var resp struct {
		Data []model.FAQEntry `json:"data"`
		Meta Meta             `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data, resp.Meta
}

func ids(entries []model.FAQEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

var errStoreDown = errors.New("store down")
