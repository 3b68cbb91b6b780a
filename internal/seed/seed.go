// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seed imports FAQ content from YAML fixtures into the row store.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/store"
	"github.com/olegiv/costafaq/internal/util"
)

// File is the fixture document.
type File struct {
	Categories []Category `yaml:"categories"`
	FAQs       []FAQ      `yaml:"faqs"`
	Relations  []Relation `yaml:"relations"`
}

// Category is a category record of the fixture.
type Category struct {
	ID          string `yaml:"id"`
	Key         string `yaml:"key"`
	Language    string `yaml:"language"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	SortOrder   int    `yaml:"sort_order"`
}

// FAQ is an entry record of the fixture.
type FAQ struct {
	ID            string   `yaml:"id"`
	Language      string   `yaml:"language"`
	Category      string   `yaml:"category"`
	Slug          string   `yaml:"slug"`
	Question      string   `yaml:"question"`
	AnswerShort   string   `yaml:"answer_short"`
	AnswerLong    string   `yaml:"answer_long"`
	Tags          []string `yaml:"tags"`
	Keywords      []string `yaml:"keywords"`
	VoiceQueries  []string `yaml:"voice_queries"`
	TargetAreas   []string `yaml:"target_areas"`
	PropertyTypes []string `yaml:"property_types"`
	IsFeatured    bool     `yaml:"is_featured"`
	SortOrder     int      `yaml:"sort_order"`
}

// Relation links two entries of one language by slug.
type Relation struct {
	Language string `yaml:"language"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Type     string `yaml:"type"`
}

// Parse decodes a fixture. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer func() { _ = fh.Close() }()

	return Parse(fh)
}

// Languages returns the languages present in f, in first-seen order.
func (f *File) Languages() []string {
	var langs []string
	add := func(lang string) {
		if lang != "" && !slices.Contains(langs, lang) {
			langs = append(langs, lang)
		}
	}
	for _, c := range f.Categories {
		add(c.Language)
	}
	for _, e := range f.FAQs {
		add(e.Language)
	}
	for _, r := range f.Relations {
		add(r.Language)
	}
	return langs
}

// Result reports what an import wrote.
type Result struct {
	Languages  []string `json:"languages"`
	Categories int      `json:"categories"`
	FAQs       int      `json:"faqs"`
	Relations  int      `json:"relations"`
}

// Importer replaces the stored content of every language in a fixture.
type Importer struct {
	db      *sql.DB
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewImporter creates an Importer writing through db.
func NewImporter(db *sql.DB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		db:      db,
		queries: store.New(db),
		logger:  logger,
		now:     time.Now,
	}
}

// Import normalizes and validates f, then replaces each of its languages in
// one transaction. Nothing is written when validation fails; the error is
// then a ValidationErrors listing every bad record.
func (i *Importer) Import(ctx context.Context, f *File) (*Result, error) {
	Normalize(f)
	if errs := Validate(f); len(errs) > 0 {
		return nil, errs
	}

	result := &Result{Languages: f.Languages()}
	if len(result.Languages) == 0 {
		return result, nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := i.queries.WithTx(tx)

	for _, lang := range result.Languages {
		if err := q.DeleteLanguageContent(ctx, lang); err != nil {
			return nil, fmt.Errorf("clearing %s content: %w", lang, err)
		}
	}

	for _, c := range f.Categories {
		err := q.CreateCategory(ctx, store.CreateCategoryParams{
			ID:          c.ID,
			CategoryKey: c.Key,
			Language:    c.Language,
			Name:        c.Name,
			Description: util.NullStringFromValue(c.Description),
			Icon:        util.NullStringFromValue(c.Icon),
			SortOrder:   int64(c.SortOrder),
		})
		if err != nil {
			return nil, fmt.Errorf("creating category %s/%s: %w", c.Language, c.Key, err)
		}
		result.Categories++
	}

	// Entries later in the file are older so equal sort orders keep file order.
	now := i.now().UTC().Truncate(time.Second)
	ids := make(map[string]string, len(f.FAQs))
	for idx, e := range f.FAQs {
		created := now.Add(-time.Duration(idx) * time.Second)
		params, err := createFAQParams(e, created)
		if err != nil {
			return nil, err
		}
		if err := q.CreateFAQ(ctx, params); err != nil {
			return nil, fmt.Errorf("creating faq %s/%s: %w", e.Language, e.Slug, err)
		}
		ids[slugKey(e.Language, e.Slug)] = e.ID
		result.FAQs++
	}

	for _, r := range f.Relations {
		err := q.CreateRelation(ctx, store.FAQRelation{
			FAQID:        ids[slugKey(r.Language, r.From)],
			RelatedFAQID: ids[slugKey(r.Language, r.To)],
			RelationType: r.Type,
		})
		if err != nil {
			return nil, fmt.Errorf("creating relation %s/%s->%s: %w", r.Language, r.From, r.To, err)
		}
		result.Relations++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed: %w", err)
	}

	i.logger.Info("seed imported",
		"languages", strings.Join(result.Languages, ","),
		"categories", result.Categories,
		"faqs", result.FAQs,
		"relations", result.Relations)
	return result, nil
}

// ImportFile loads the fixture at path and imports it.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, f)
}

func createFAQParams(e FAQ, created time.Time) (store.CreateFAQParams, error) {
	lists := make([]string, 0, 5)
	for _, l := range [][]string{e.Tags, e.Keywords, e.VoiceQueries, e.TargetAreas, e.PropertyTypes} {
		s, err := encodeList(l)
		if err != nil {
			return store.CreateFAQParams{}, fmt.Errorf("encoding lists of %s/%s: %w", e.Language, e.Slug, err)
		}
		lists = append(lists, s)
	}

	return store.CreateFAQParams{
		ID:            e.ID,
		Language:      e.Language,
		Category:      e.Category,
		Slug:          e.Slug,
		Question:      e.Question,
		AnswerShort:   e.AnswerShort,
		AnswerLong:    util.NullStringFromValue(e.AnswerLong),
		Tags:          lists[0],
		Keywords:      lists[1],
		VoiceQueries:  lists[2],
		TargetAreas:   lists[3],
		PropertyTypes: lists[4],
		IsFeatured:    e.IsFeatured,
		SortOrder:     int64(e.SortOrder),
		CreatedAt:     created,
		UpdatedAt:     created,
	}, nil
}

// encodeList stores a list column as a JSON array, never null.
func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func slugKey(lang, slug string) string {
	return lang + "/" + slug
}

// Normalize trims fields, lowercases language codes and fills missing ids,
// slugs and relation types. Invalid values are left for Validate to report.
func Normalize(f *File) {
	for idx := range f.Categories {
		c := &f.Categories[idx]
		c.Key = strings.TrimSpace(c.Key)
		c.Language = normalizeLanguage(c.Language)
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
	}

	for idx := range f.FAQs {
		e := &f.FAQs[idx]
		e.Language = normalizeLanguage(e.Language)
		e.Category = strings.TrimSpace(e.Category)
		e.Question = strings.TrimSpace(e.Question)
		e.AnswerShort = strings.TrimSpace(e.AnswerShort)
		e.Slug = strings.TrimSpace(e.Slug)
		if e.Slug == "" {
			e.Slug = util.Slugify(e.Question)
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
	}

	for idx := range f.Relations {
		r := &f.Relations[idx]
		r.Language = normalizeLanguage(r.Language)
		r.From = strings.TrimSpace(r.From)
		r.To = strings.TrimSpace(r.To)
		if r.Type == "" {
			r.Type = model.RelationSimilar
		}
	}
}

// normalizeLanguage returns the normalized code, or the raw trimmed value
// when it is not a valid code so Validate can name it.
func normalizeLanguage(lang string) string {
	if code := model.NormalizeLangCode(lang); code != "" {
		return code
	}
	return strings.TrimSpace(lang)
}
