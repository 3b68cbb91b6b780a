// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/olegiv/costafaq/internal/model"
)

// fakeSource is an in-memory Source that records calls.
type fakeSource struct {
	mu      sync.Mutex
	faqs    map[string][]model.FAQEntry
	cats    map[string][]model.FAQCategory
	related map[string][]model.FAQEntry

	faqErr error
	catErr error
	relErr error

	// gate, when set, blocks ListFAQs until it is closed or receives.
	gate chan struct{}

	calls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		faqs:    map[string][]model.FAQEntry{},
		cats:    map[string][]model.FAQCategory{},
		related: map[string][]model.FAQEntry{},
	}
}

func (f *fakeSource) ListFAQs(ctx context.Context, lang string) ([]model.FAQEntry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "faqs:"+lang)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.faqErr != nil {
		return nil, f.faqErr
	}
	return append([]model.FAQEntry(nil), f.faqs[lang]...), nil
}

func (f *fakeSource) ListCategories(_ context.Context, lang string) ([]model.FAQCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "categories:"+lang)
	if f.catErr != nil {
		return nil, f.catErr
	}
	return append([]model.FAQCategory(nil), f.cats[lang]...), nil
}

func (f *fakeSource) ListRelated(_ context.Context, faqID string, limit int) ([]model.FAQEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "related:"+faqID)
	if f.relErr != nil {
		return nil, f.relErr
	}
	rel := f.related[faqID]
	if len(rel) > limit {
		rel = rel[:limit]
	}
	return append([]model.FAQEntry(nil), rel...), nil
}

func (f *fakeSource) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeSource) setGate(gate chan struct{}) {
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
}

func entry(id, lang, category string, sortOrder int) model.FAQEntry {
	return model.FAQEntry{
		ID:          id,
		Language:    lang,
		Category:    category,
		Slug:        id,
		Question:    fmt.Sprintf("Question %s?", id),
		AnswerShort: "Answer " + id,
		SortOrder:   sortOrder,
		CreatedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// englishFAQs is a small English working set covering every discovery field.
func englishFAQs() []model.FAQEntry {
	nie := entry("nie", "en", "legal", 1)
	nie.Question = "What is an NIE number?"
	nie.Keywords = []string{"nie", "tax id"}
	nie.VoiceQueries = []string{"how do I get an NIE in Spain"}
	nie.TargetAreas = []string{"Marbella", "Estepona"}
	nie.IsFeatured = true

	lawyer := entry("lawyer", "en", "legal", 2)
	lawyer.Keywords = []string{"lawyer", "abogado"}
	lawyer.TargetAreas = []string{"Marbella"}
	lawyer.PropertyTypes = []string{"Villa"}
	lawyer.IsFeatured = true

	ibi := entry("ibi", "en", "tax", 0)
	ibi.Question = "What is IBI?"
	ibi.AnswerShort = "The annual municipal property tax."
	ibi.Keywords = []string{"ibi", "property tax"}
	ibi.PropertyTypes = []string{"Apartment", "Villa"}
	ibi.Tags = []string{"annual"}
	ibi.IsFeatured = true

	mortgage := entry("mortgage", "en", "finance", 3)
	mortgage.AnswerLong = "Non-residents can usually borrow up to 70%."
	mortgage.TargetAreas = []string{"Benahavís"}
	mortgage.VoiceQueries = []string{"can foreigners get a mortgage in Spain"}

	golden := entry("golden-visa", "en", "legal", 4)
	golden.PropertyTypes = []string{"Penthouse"}

	return []model.FAQEntry{nie, lawyer, ibi, mortgage, golden}
}

func englishCategories() []model.FAQCategory {
	return []model.FAQCategory{
		{ID: "c-legal", Key: "legal", Language: "en", Name: "Legal", SortOrder: 0},
		{ID: "c-tax", Key: "tax", Language: "en", Name: "Tax", SortOrder: 1},
		{ID: "c-finance", Key: "finance", Language: "en", Name: "Finance", SortOrder: 2},
	}
}

func ids(entries []model.FAQEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
