// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package faq implements multilingual FAQ retrieval: loading a language's
// working set with fallback to English, in-memory filtering and search,
// derived views and a per-language cache.
package faq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/costafaq/internal/content"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/store"
	"github.com/olegiv/costafaq/internal/util"
)

// Source reads typed FAQ rows for one language.
type Source interface {
	ListFAQs(ctx context.Context, lang string) ([]model.FAQEntry, error)
	ListCategories(ctx context.Context, lang string) ([]model.FAQCategory, error)
	ListRelated(ctx context.Context, faqID string, limit int) ([]model.FAQEntry, error)
}

// StoreSource is the Source backed by the SQL store. Rows are validated on
// the way in; a row that fails validation is logged and skipped.
type StoreSource struct {
	queries  *store.Queries
	renderer *content.Renderer
	logger   *slog.Logger
}

// NewStoreSource creates a StoreSource.
func NewStoreSource(q *store.Queries, renderer *content.Renderer, logger *slog.Logger) *StoreSource {
	if renderer == nil {
		renderer = content.NewRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreSource{queries: q, renderer: renderer, logger: logger}
}

// ListFAQs returns the valid entries stored for lang.
func (s *StoreSource) ListFAQs(ctx context.Context, lang string) ([]model.FAQEntry, error) {
	rows, err := s.queries.ListFAQsByLanguage(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("listing faqs for %q: %w", lang, err)
	}

	entries := make([]model.FAQEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := s.parseFAQ(row)
		if err == nil && entry.Language != lang {
			err = fmt.Errorf("language %q does not match %q", entry.Language, lang)
		}
		if err != nil {
			s.dropped("faq", row.ID, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListCategories returns the valid categories stored for lang.
func (s *StoreSource) ListCategories(ctx context.Context, lang string) ([]model.FAQCategory, error) {
	rows, err := s.queries.ListCategoriesByLanguage(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("listing categories for %q: %w", lang, err)
	}

	categories := make([]model.FAQCategory, 0, len(rows))
	for _, row := range rows {
		cat, err := parseCategory(row)
		if err == nil && cat.Language != lang {
			err = fmt.Errorf("language %q does not match %q", cat.Language, lang)
		}
		if err != nil {
			s.dropped("faq_category", row.ID, err)
			continue
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// ListRelated returns the entries faqID is related to.
func (s *StoreSource) ListRelated(ctx context.Context, faqID string, limit int) ([]model.FAQEntry, error) {
	rows, err := s.queries.ListRelatedFAQs(ctx, faqID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing related faqs for %q: %w", faqID, err)
	}

	entries := make([]model.FAQEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := s.parseFAQ(row)
		if err != nil {
			s.dropped("faq", row.ID, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *StoreSource) dropped(kind, id string, err error) {
	s.logger.Warn("dropping invalid row",
		"category", "faq",
		"table", kind,
		"id", id,
		"reason", err.Error(),
	)
}

func (s *StoreSource) parseFAQ(row store.FAQ) (model.FAQEntry, error) {
	e := model.FAQEntry{
		ID:          strings.TrimSpace(row.ID),
		Language:    strings.TrimSpace(row.Language),
		Category:    strings.TrimSpace(row.Category),
		Slug:        strings.TrimSpace(row.Slug),
		Question:    strings.TrimSpace(row.Question),
		AnswerShort: strings.TrimSpace(row.AnswerShort),
		AnswerLong:  util.StringFromNull(row.AnswerLong),
		IsFeatured:  row.IsFeatured,
		SortOrder:   int(row.SortOrder),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"id", e.ID},
		{"language", e.Language},
		{"category", e.Category},
		{"question", e.Question},
		{"answer_short", e.AnswerShort},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.FAQEntry{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	if !model.IsValidLangCode(e.Language) {
		return model.FAQEntry{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, e.Language)
	}

	var errs []error
	e.Tags = decodeList("tags", row.Tags, &errs)
	e.Keywords = decodeList("keywords", row.Keywords, &errs)
	e.VoiceQueries = decodeList("voice_queries", row.VoiceQueries, &errs)
	e.TargetAreas = decodeList("target_areas", row.TargetAreas, &errs)
	e.PropertyTypes = decodeList("property_types", row.PropertyTypes, &errs)
	if err := errors.Join(errs...); err != nil {
		return model.FAQEntry{}, err
	}

	if e.AnswerLong != "" {
		html, err := s.renderer.Render(e.AnswerLong)
		if err != nil {
			return model.FAQEntry{}, err
		}
		e.AnswerLongHTML = html
	}

	return e, nil
}

// decodeList parses a JSON string array column. NULL-ish values decode to an
// empty list; blank elements are dropped.
func decodeList(column, raw string, errs *[]error) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", column, err))
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseCategory(row store.FAQCategory) (model.FAQCategory, error) {
	c := model.FAQCategory{
		ID:          strings.TrimSpace(row.ID),
		Key:         strings.TrimSpace(row.CategoryKey),
		Language:    strings.TrimSpace(row.Language),
		Name:        strings.TrimSpace(row.Name),
		Description: util.StringFromNull(row.Description),
		Icon:        util.StringFromNull(row.Icon),
		SortOrder:   int(row.SortOrder),
	}

	switch {
	case c.ID == "":
		return model.FAQCategory{}, errors.New("missing id")
	case c.Key == "":
		return model.FAQCategory{}, errors.New("missing key")
	case c.Name == "":
		return model.FAQCategory{}, errors.New("missing name")
	case !model.IsValidLangCode(c.Language):
		return model.FAQCategory{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, c.Language)
	}
	return c, nil
}

var _ Source = (*StoreSource)(nil)
