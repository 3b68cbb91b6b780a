// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"context"
	"slices"
	"sync"

	"github.com/olegiv/costafaq/internal/model"
)

// Loader provides working sets and related lookups. *Service implements it.
type Loader interface {
	WorkingSet(ctx context.Context, lang string) (*WorkingSet, error)
	Related(ctx context.Context, ws *WorkingSet, entry model.FAQEntry, limit int) []model.FAQEntry
}

// State is a point-in-time copy of a Browser.
type State struct {
	Language                 string                       `json:"language"`
	EffectiveLanguage        string                       `json:"effective_language"`
	Loading                  bool                         `json:"loading"`
	Error                    string                       `json:"error,omitempty"`
	FallbackUsed             bool                         `json:"fallback_used"`
	CategoryFallbackUsed     bool                         `json:"category_fallback_used"`
	HasDataInCurrentLanguage bool                         `json:"has_data_in_current_language"`
	FAQs                     []model.FAQEntry             `json:"faqs"`
	Categories               map[string]model.FAQCategory `json:"categories"`
	CategoryNames            map[string]string            `json:"category_names"`
	Filtered                 []model.FAQEntry             `json:"filtered"`
	Filter                   Filter                       `json:"filter"`
}

// Browser holds one client's language, filter and loaded data. Every
// language change is tagged with a sequence number and only the latest
// one may replace the data, so a slow earlier load cannot overwrite a
// newer language.
type Browser struct {
	loader Loader

	mu       sync.Mutex
	seq      uint64
	lang     string
	loading  bool
	errMsg   string
	ws       *WorkingSet
	filter   Filter
	filtered []model.FAQEntry
}

// NewBrowser creates a Browser with nothing loaded.
func NewBrowser(loader Loader) *Browser {
	return &Browser{loader: loader, lang: model.DefaultLanguage}
}

// SetLanguage loads lang. It returns ErrStaleResponse when another
// SetLanguage started meanwhile; the result is then dropped. On failure the
// previous data stays and the state carries LoadFailedMessage. A malformed
// code is rejected before loading: the current language and any load in
// flight are kept and the state carries InvalidLanguageMessage.
func (b *Browser) SetLanguage(ctx context.Context, lang string) error {
	code, err := ResolveLanguage(lang)
	if err != nil {
		b.mu.Lock()
		b.errMsg = InvalidLanguageMessage
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.lang = code
	b.loading = true
	b.mu.Unlock()

	ws, err := b.loader.WorkingSet(ctx, code)

	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.seq {
		return ErrStaleResponse
	}
	b.loading = false
	if err != nil {
		b.errMsg = LoadFailedMessage
		return err
	}

	b.errMsg = ""
	b.ws = ws
	b.refilter()
	return nil
}

// Retry reloads the current language.
func (b *Browser) Retry(ctx context.Context) error {
	b.mu.Lock()
	lang := b.lang
	b.mu.Unlock()
	return b.SetLanguage(ctx, lang)
}

// SetCategory sets the category selector.
func (b *Browser) SetCategory(key string) {
	b.update(func(f *Filter) { f.Category = key })
}

// SetTargetArea sets the target area selector.
func (b *Browser) SetTargetArea(area string) {
	b.update(func(f *Filter) { f.TargetArea = area })
}

// SetPropertyType sets the property type selector.
func (b *Browser) SetPropertyType(t string) {
	b.update(func(f *Filter) { f.PropertyType = t })
}

// SetSearch sets the free-text search.
func (b *Browser) SetSearch(q string) {
	b.update(func(f *Filter) { f.Search = q })
}

// SetFilter replaces the whole filter.
func (b *Browser) SetFilter(f Filter) {
	b.update(func(cur *Filter) { *cur = f })
}

// ResetFilters clears every selector and the search.
func (b *Browser) ResetFilters() {
	b.update(func(f *Filter) { *f = Filter{} })
}

func (b *Browser) update(fn func(*Filter)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.filter)
	b.refilter()
}

// refilter recomputes the filtered list. Callers hold mu.
func (b *Browser) refilter() {
	if b.ws == nil {
		b.filtered = nil
		return
	}
	b.filtered = b.filter.Apply(b.ws.FAQs)
}

// Snapshot returns a copy of the current state.
func (b *Browser) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := State{
		Language:          b.lang,
		EffectiveLanguage: b.lang,
		Loading:           b.loading,
		Error:             b.errMsg,
		Filter:            b.filter,
		FAQs:              []model.FAQEntry{},
		Filtered:          []model.FAQEntry{},
		Categories:        map[string]model.FAQCategory{},
		CategoryNames:     map[string]string{},
	}
	if b.ws == nil {
		return st
	}

	st.EffectiveLanguage = b.ws.EffectiveLanguage
	st.FallbackUsed = b.ws.FallbackUsed
	st.CategoryFallbackUsed = b.ws.CategoryFallbackUsed
	st.HasDataInCurrentLanguage = b.ws.HasDataInCurrentLanguage()
	st.FAQs = slices.Clone(b.ws.FAQs)
	st.Filtered = slices.Clone(b.filtered)
	st.Categories = b.ws.CategoriesByKey()
	st.CategoryNames = b.ws.CategoryNames()
	return st
}

// workingSet returns the loaded set, or an empty one.
func (b *Browser) workingSet() *WorkingSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ws == nil {
		return &WorkingSet{CategoryCounts: map[string]int{}}
	}
	return b.ws
}

// Featured returns up to limit featured entries.
func (b *Browser) Featured(limit int) []model.FAQEntry {
	return Featured(b.workingSet().FAQs, limit)
}

// VoiceSearch returns the entries with voice queries.
func (b *Browser) VoiceSearch() []model.FAQEntry {
	return VoiceSearch(b.workingSet().FAQs)
}

// ByKeyword returns the entries with a matching keyword.
func (b *Browser) ByKeyword(keyword string) []model.FAQEntry {
	return ByKeyword(b.workingSet().FAQs, keyword)
}

// TargetAreas returns the target area options.
func (b *Browser) TargetAreas() []string {
	return TargetAreas(b.workingSet().FAQs)
}

// PropertyTypes returns the property type options.
func (b *Browser) PropertyTypes() []string {
	return PropertyTypes(b.workingSet().FAQs)
}

// CategoryCount returns the entry count of a category, or the total for "all".
func (b *Browser) CategoryCount(key string) int {
	return b.workingSet().CategoryCount(key)
}

// Related returns entries related to entry.
func (b *Browser) Related(ctx context.Context, entry model.FAQEntry, limit int) []model.FAQEntry {
	return b.loader.Related(ctx, b.workingSet(), entry, limit)
}
