// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seed

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/store"
)

const fixture = `
categories:
  - key: legal
    language: en
    name: Legal
    sort_order: 1
  - key: legal
    language: es
    name: Legal
faqs:
  - language: en
    category: legal
    question: What is an NIE number?
    answer_short: A foreigner identification number.
    answer_long: "You need it to **buy** property."
    keywords: [nie, tax]
    target_areas: [Marbella]
    is_featured: true
  - language: en
    category: legal
    slug: ibi-tax
    question: What is IBI?
    answer_short: The annual property tax.
  - language: ES-es
    category: legal
    question: ¿Qué es el NIE?
    answer_short: Número de identificación de extranjero.
relations:
  - language: en
    from: what-is-an-nie-number
    to: ibi-tax
`

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db, store.DriverSQLite))
	return db
}

func newImporter(db *sql.DB) *Importer {
	return NewImporter(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	assert.Len(t, f.Categories, 2)
	assert.Len(t, f.FAQs, 3)
	assert.Len(t, f.Relations, 1)
	assert.Equal(t, []string{"Marbella"}, f.FAQs[0].TargetAreas)
	assert.Equal(t, []string{"en", "es", "ES-es"}, f.Languages())
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("faqs:\n  - question: x\n    answer: y\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Languages())
}

func TestNormalize(t *testing.T) {
	f, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	Normalize(f)

	assert.Equal(t, "what-is-an-nie-number", f.FAQs[0].Slug)
	assert.Equal(t, "ibi-tax", f.FAQs[1].Slug)
	assert.Equal(t, "es", f.FAQs[2].Language)
	assert.Equal(t, "que-es-el-nie", f.FAQs[2].Slug)
	assert.NotEmpty(t, f.FAQs[0].ID)
	assert.NotEqual(t, f.FAQs[0].ID, f.FAQs[1].ID)
	assert.Equal(t, model.RelationSimilar, f.Relations[0].Type)
	assert.Equal(t, []string{"en", "es"}, f.Languages())
}

func TestValidate_ListsEveryError(t *testing.T) {
	f := &File{
		Categories: []Category{
			{Key: "all", Language: "en", Name: "All"},
			{Key: "tax", Language: "english", Name: ""},
		},
		FAQs: []FAQ{
			{Language: "en", Category: "legal", Slug: "nie", Question: "Q", AnswerShort: ""},
			{Language: "en", Category: "legal", Slug: "nie", Question: "Q2", AnswerShort: "A"},
			{Language: "en", Category: "", Slug: "Bad Slug", Question: "Q3", AnswerShort: "A"},
			{Language: "en", Category: "legal", Slug: "featured", Question: "Q4", AnswerShort: "A"},
			{Language: "es", Category: "legal", Question: "¿Schema?", AnswerShort: "A"},
		},
		Relations: []Relation{
			{Language: "en", From: "nie", To: "missing"},
			{Language: "en", From: "nie", To: "nie"},
			{Language: "en", From: "nie", To: "Bad Slug", Type: "cousin"},
		},
	}
	Normalize(f)

	errs := Validate(f)
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}

	assert.Contains(t, messages, `category all: key "all" is reserved`)
	assert.Contains(t, messages, `category tax: invalid language "english"`)
	assert.Contains(t, messages, "category tax: missing name")
	assert.Contains(t, messages, "faq nie: missing answer_short")
	assert.Contains(t, messages, "faq nie: duplicate slug in en")
	assert.Contains(t, messages, "faq Bad Slug: missing category")
	assert.Contains(t, messages, "faq Bad Slug: invalid slug")
	assert.Contains(t, messages, `faq featured: slug "featured" is reserved`)
	assert.Contains(t, messages, `faq schema: slug "schema" is reserved`)
	assert.Contains(t, messages, "relation #0: unknown faq en/missing")
	assert.Contains(t, messages, "relation #1: entry cannot relate to itself")
	assert.Contains(t, messages, `relation #2: unknown type "cousin"`)
}

func TestImport(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	result, err := newImporter(db).Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Languages: []string{"en", "es"}, Categories: 2, FAQs: 3, Relations: 1}, result)

	q := store.New(db)
	en, err := q.ListFAQsByLanguage(ctx, "en")
	require.NoError(t, err)
	require.Len(t, en, 2)
	assert.Equal(t, "what-is-an-nie-number", en[0].Slug, "file order kept for equal sort order")
	assert.JSONEq(t, `["nie","tax"]`, en[0].Keywords)
	assert.JSONEq(t, `[]`, en[0].Tags)
	assert.True(t, en[0].AnswerLong.Valid)
	assert.False(t, en[1].AnswerLong.Valid)

	related, err := q.ListRelatedFAQs(ctx, en[0].ID, 5)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "ibi-tax", related[0].Slug)

	cats, err := q.ListCategoriesByLanguage(ctx, "es")
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestImport_ReplacesLanguage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	imp := newImporter(db)

	f, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	_, err = imp.Import(ctx, f)
	require.NoError(t, err)

	// A second file touching only en leaves es alone.
	second := &File{FAQs: []FAQ{{Language: "en", Category: "tax", Question: "New question?", AnswerShort: "New."}}}
	result, err := imp.Import(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, result.Languages)

	q := store.New(db)
	en, err := q.ListFAQsByLanguage(ctx, "en")
	require.NoError(t, err)
	require.Len(t, en, 1)
	assert.Equal(t, "new-question", en[0].Slug)

	enCats, err := q.ListCategoriesByLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Empty(t, enCats)

	es, err := q.ListFAQsByLanguage(ctx, "es")
	require.NoError(t, err)
	assert.Len(t, es, 1)
}

func TestImport_ValidationWritesNothing(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	f := &File{FAQs: []FAQ{
		{Language: "en", Category: "legal", Question: "Valid?", AnswerShort: "Yes."},
		{Language: "en", Category: "legal", Question: "", AnswerShort: ""},
	}}
	_, err := newImporter(db).Import(ctx, f)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)

	en, err := store.New(db).ListFAQsByLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Empty(t, en)
}

func TestImportFile_Fixture(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	result, err := newImporter(db).ImportFile(ctx, filepath.Join("..", "..", "data", "seed", "faqs.yaml"))
	require.NoError(t, err)

	assert.Contains(t, result.Languages, "en")
	assert.Contains(t, result.Languages, "es")
	assert.Contains(t, result.Languages, "fr")
	assert.Positive(t, result.FAQs)

	fr, err := store.New(db).ListFAQsByLanguage(ctx, "fr")
	require.NoError(t, err)
	assert.Empty(t, fr, "fr ships categories only")
}

func TestImportFile_Missing(t *testing.T) {
	_, err := newImporter(testDB(t)).ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
