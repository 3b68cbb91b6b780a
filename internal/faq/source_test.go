// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/costafaq/internal/content"
	"github.com/olegiv/costafaq/internal/store"
)

func testStore(t *testing.T) (*sql.DB, *store.Queries) {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "faq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db, store.DriverSQLite))
	return db, store.New(db)
}

func faqRow(id, lang, category string) store.CreateFAQParams {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return store.CreateFAQParams{
		ID:            id,
		Language:      lang,
		Category:      category,
		Slug:          id,
		Question:      "Question " + id,
		AnswerShort:   "Short " + id,
		Tags:          "[]",
		Keywords:      "[]",
		VoiceQueries:  "[]",
		TargetAreas:   "[]",
		PropertyTypes: "[]",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestStoreSourceParsesRows(t *testing.T) {
	_, q := testStore(t)
	ctx := context.Background()

	row := faqRow("nie", "en", "legal")
	row.Question = "  What is an NIE number?  "
	row.AnswerLong = sql.NullString{String: "You need it to **buy** property.", Valid: true}
	row.Keywords = `["nie", " tax id ", ""]`
	row.VoiceQueries = `["how do I get an NIE"]`
	row.TargetAreas = `["Marbella"]`
	row.IsFeatured = true
	row.SortOrder = 2
	require.NoError(t, q.CreateFAQ(ctx, row))

	src := NewStoreSource(q, content.NewRenderer(), slog.New(slog.DiscardHandler))
	entries, err := src.ListFAQs(ctx, "en")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "What is an NIE number?", e.Question)
	assert.Equal(t, []string{"nie", "tax id"}, e.Keywords)
	assert.Equal(t, []string{"how do I get an NIE"}, e.VoiceQueries)
	assert.Equal(t, []string{"Marbella"}, e.TargetAreas)
	assert.Equal(t, []string{}, e.PropertyTypes)
	assert.True(t, e.IsFeatured)
	assert.Equal(t, 2, e.SortOrder)
	assert.Contains(t, e.AnswerLongHTML, "<strong>buy</strong>")
	assert.True(t, e.HasVoiceQueries())
}

func TestStoreSourceDropsInvalidRows(t *testing.T) {
	_, q := testStore(t)
	ctx := context.Background()

	good := faqRow("good", "en", "legal")
	badJSON := faqRow("bad-json", "en", "legal")
	badJSON.Keywords = `{"nie": true}`
	noAnswer := faqRow("no-answer", "en", "legal")
	noAnswer.AnswerShort = "   "
	for _, r := range []store.CreateFAQParams{good, badJSON, noAnswer} {
		require.NoError(t, q.CreateFAQ(ctx, r))
	}

	var logs bytes.Buffer
	src := NewStoreSource(q, nil, slog.New(slog.NewTextHandler(&logs, nil)))

	entries, err := src.ListFAQs(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, ids(entries))

	out := logs.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "id=bad-json")
	assert.Contains(t, out, "invalid keywords")
	assert.Contains(t, out, "id=no-answer")
	assert.Contains(t, out, "missing answer_short")
}

func TestStoreSourceCategories(t *testing.T) {
	_, q := testStore(t)
	ctx := context.Background()

	require.NoError(t, q.CreateCategory(ctx, store.CreateCategoryParams{
		ID: "c1", CategoryKey: "legal", Language: "es", Name: "Legal",
		Icon: sql.NullString{String: "scale", Valid: true}, SortOrder: 1,
	}))
	require.NoError(t, q.CreateCategory(ctx, store.CreateCategoryParams{
		ID: "c2", CategoryKey: "tax", Language: "es", Name: " ", SortOrder: 0,
	}))

	src := NewStoreSource(q, nil, slog.New(slog.DiscardHandler))
	cats, err := src.ListCategories(ctx, "es")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "legal", cats[0].Key)
	assert.Equal(t, "scale", cats[0].Icon)
	assert.Empty(t, cats[0].Description)
}

func TestStoreSourceRelated(t *testing.T) {
	_, q := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"nie", "lawyer", "notary"} {
		require.NoError(t, q.CreateFAQ(ctx, faqRow(id, "en", "legal")))
	}
	require.NoError(t, q.CreateRelation(ctx, store.FAQRelation{FAQID: "nie", RelatedFAQID: "notary", RelationType: "similar"}))

	src := NewStoreSource(q, nil, slog.New(slog.DiscardHandler))
	related, err := src.ListRelated(ctx, "nie", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"notary"}, ids(related))
}

func TestStoreSourceQueryError(t *testing.T) {
	db, q := testStore(t)
	require.NoError(t, db.Close())

	src := NewStoreSource(q, nil, slog.New(slog.DiscardHandler))
	_, err := src.ListFAQs(context.Background(), "en")
	assert.Error(t, err)

	_, err = Load(context.Background(), src, "en")
	assert.ErrorIs(t, err, ErrLoadFailed)
}
