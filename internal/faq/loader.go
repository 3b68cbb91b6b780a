// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/costafaq/internal/model"
)

// WorkingSet is everything loaded for one requested language. It is never
// mutated after Load returns and can be shared between goroutines.
type WorkingSet struct {
	// Language is the requested language.
	Language string `json:"language"`
	// EffectiveLanguage is the language the entries are actually in.
	EffectiveLanguage string `json:"effective_language"`
	// CategoryLanguage is the language the categories are actually in.
	CategoryLanguage string `json:"category_language"`

	FallbackUsed         bool `json:"fallback_used"`
	CategoryFallbackUsed bool `json:"category_fallback_used"`

	FAQs           []model.FAQEntry    `json:"faqs"`
	Categories     []model.FAQCategory `json:"categories"`
	CategoryCounts map[string]int      `json:"category_counts"`

	LoadedAt time.Time `json:"loaded_at"`
}

// ResolveLanguage normalizes a requested language. Blank selects the default.
func ResolveLanguage(lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		return model.DefaultLanguage, nil
	}
	code := model.NormalizeLangCode(lang)
	if code == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return code, nil
}

// Load reads the working set for lang. Entries and categories fall back to
// the default language independently when lang has none. Entries are read
// before categories; any store error aborts the load.
func Load(ctx context.Context, src Source, lang string) (*WorkingSet, error) {
	lang, err := ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}

	ws := &WorkingSet{
		Language:          lang,
		EffectiveLanguage: lang,
		CategoryLanguage:  lang,
	}

	faqs, err := src.ListFAQs(ctx, lang)
	if err != nil {
		return nil, loadError("faqs", lang, err)
	}
	categories, err := src.ListCategories(ctx, lang)
	if err != nil {
		return nil, loadError("categories", lang, err)
	}

	if len(faqs) == 0 && lang != model.DefaultLanguage {
		if faqs, err = src.ListFAQs(ctx, model.DefaultLanguage); err != nil {
			return nil, loadError("faqs", model.DefaultLanguage, err)
		}
		ws.FallbackUsed = true
		ws.EffectiveLanguage = model.DefaultLanguage
	}
	if len(categories) == 0 && lang != model.DefaultLanguage {
		if categories, err = src.ListCategories(ctx, model.DefaultLanguage); err != nil {
			return nil, loadError("categories", model.DefaultLanguage, err)
		}
		ws.CategoryFallbackUsed = true
		ws.CategoryLanguage = model.DefaultLanguage
	}

	if faqs == nil {
		faqs = []model.FAQEntry{}
	}
	if categories == nil {
		categories = []model.FAQCategory{}
	}

	ws.FAQs = faqs
	ws.Categories = categories
	ws.CategoryCounts = CategoryCounts(faqs)
	ws.LoadedAt = time.Now().UTC()
	return ws, nil
}

func loadError(what, lang string, err error) error {
	return fmt.Errorf("%w: listing %s for %q: %w", ErrLoadFailed, what, lang, err)
}

// HasDataInCurrentLanguage reports whether entries exist in the requested language.
func (ws *WorkingSet) HasDataInCurrentLanguage() bool {
	return !ws.FallbackUsed
}

// CategoriesByKey indexes the categories by key.
func (ws *WorkingSet) CategoriesByKey() map[string]model.FAQCategory {
	m := make(map[string]model.FAQCategory, len(ws.Categories))
	for _, c := range ws.Categories {
		m[c.Key] = c
	}
	return m
}

// CategoryNames maps category keys to display names.
func (ws *WorkingSet) CategoryNames() map[string]string {
	m := make(map[string]string, len(ws.Categories))
	for _, c := range ws.Categories {
		m[c.Key] = c.Name
	}
	return m
}

// CategoryCount returns the number of entries in a category. "all" (or "")
// returns the total; unknown keys return 0.
func (ws *WorkingSet) CategoryCount(key string) int {
	if model.IsSelectorAll(key) {
		return len(ws.FAQs)
	}
	return ws.CategoryCounts[key]
}

// FindBySlug returns the entry with the given slug.
func (ws *WorkingSet) FindBySlug(slug string) (model.FAQEntry, error) {
	for _, e := range ws.FAQs {
		if e.Slug == slug {
			return e, nil
		}
	}
	return model.FAQEntry{}, fmt.Errorf("%w: slug %q", ErrNotFound, slug)
}

// FindByID returns the entry with the given id.
func (ws *WorkingSet) FindByID(id string) (model.FAQEntry, error) {
	for _, e := range ws.FAQs {
		if e.ID == id {
			return e, nil
		}
	}
	return model.FAQEntry{}, fmt.Errorf("%w: id %q", ErrNotFound, id)
}
