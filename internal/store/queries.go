// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries runs the FAQ statements against a DBTX.
type Queries struct {
	db DBTX
}

// New creates Queries over db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const faqColumns = `f.id, f.language, f.category, f.slug, f.question, f.answer_short, f.answer_long,
	f.tags, f.keywords, f.voice_queries, f.target_areas, f.property_types,
	f.is_featured, f.sort_order, f.created_at, f.updated_at`

const listFAQsByLanguage = `SELECT ` + faqColumns + `
FROM faqs f
WHERE f.language = ?
ORDER BY f.sort_order ASC, f.created_at DESC`

// ListFAQsByLanguage returns all entries of a language, by sort order then newest first.
func (q *Queries) ListFAQsByLanguage(ctx context.Context, language string) ([]FAQ, error) {
	rows, err := q.db.QueryContext(ctx, listFAQsByLanguage, language)
	if err != nil {
		return nil, err
	}
	return scanFAQs(rows)
}

const listRelatedFAQs = `SELECT ` + faqColumns + `
FROM faq_relations r
JOIN faqs f ON f.id = r.related_faq_id
WHERE r.faq_id = ?
ORDER BY f.sort_order ASC, f.created_at DESC
LIMIT ?`

// ListRelatedFAQs resolves the relations of faqID to their target entries.
func (q *Queries) ListRelatedFAQs(ctx context.Context, faqID string, limit int64) ([]FAQ, error) {
	rows, err := q.db.QueryContext(ctx, listRelatedFAQs, faqID, limit)
	if err != nil {
		return nil, err
	}
	return scanFAQs(rows)
}

func scanFAQs(rows *sql.Rows) ([]FAQ, error) {
	defer func() { _ = rows.Close() }()

	var items []FAQ
	for rows.Next() {
		var i FAQ
		if err := rows.Scan(
			&i.ID,
			&i.Language,
			&i.Category,
			&i.Slug,
			&i.Question,
			&i.AnswerShort,
			&i.AnswerLong,
			&i.Tags,
			&i.Keywords,
			&i.VoiceQueries,
			&i.TargetAreas,
			&i.PropertyTypes,
			&i.IsFeatured,
			&i.SortOrder,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCategoriesByLanguage = `SELECT id, category_key, language, name, description, icon, sort_order
FROM faq_categories
WHERE language = ?
ORDER BY sort_order ASC`

// ListCategoriesByLanguage returns the categories of a language by sort order.
func (q *Queries) ListCategoriesByLanguage(ctx context.Context, language string) ([]FAQCategory, error) {
	rows, err := q.db.QueryContext(ctx, listCategoriesByLanguage, language)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []FAQCategory
	for rows.Next() {
		var i FAQCategory
		if err := rows.Scan(
			&i.ID,
			&i.CategoryKey,
			&i.Language,
			&i.Name,
			&i.Description,
			&i.Icon,
			&i.SortOrder,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countFAQsByLanguage = `SELECT language, COUNT(*) FROM faqs GROUP BY language ORDER BY language`

// CountFAQsByLanguage returns the number of stored entries per language.
func (q *Queries) CountFAQsByLanguage(ctx context.Context) ([]LanguageCount, error) {
	rows, err := q.db.QueryContext(ctx, countFAQsByLanguage)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []LanguageCount
	for rows.Next() {
		var i LanguageCount
		if err := rows.Scan(&i.Language, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteLanguageContent removes every entry, relation and category of a language.
func (q *Queries) DeleteLanguageContent(ctx context.Context, language string) error {
	stmts := []string{
		`DELETE FROM faq_relations WHERE faq_id IN (SELECT id FROM faqs WHERE language = ?)
			OR related_faq_id IN (SELECT id FROM faqs WHERE language = ?)`,
		`DELETE FROM faqs WHERE language = ?`,
		`DELETE FROM faq_categories WHERE language = ?`,
	}
	if _, err := q.db.ExecContext(ctx, stmts[0], language, language); err != nil {
		return err
	}
	for _, stmt := range stmts[1:] {
		if _, err := q.db.ExecContext(ctx, stmt, language); err != nil {
			return err
		}
	}
	return nil
}

// CreateCategoryParams holds the columns of a new category.
type CreateCategoryParams struct {
	ID          string
	CategoryKey string
	Language    string
	Name        string
	Description sql.NullString
	Icon        sql.NullString
	SortOrder   int64
}

const createCategory = `INSERT INTO faq_categories (id, category_key, language, name, description, icon, sort_order)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// CreateCategory inserts a category.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) error {
	_, err := q.db.ExecContext(ctx, createCategory,
		arg.ID,
		arg.CategoryKey,
		arg.Language,
		arg.Name,
		arg.Description,
		arg.Icon,
		arg.SortOrder,
	)
	return err
}

// CreateFAQParams holds the columns of a new entry.
type CreateFAQParams struct {
	ID            string
	Language      string
	Category      string
	Slug          string
	Question      string
	AnswerShort   string
	AnswerLong    sql.NullString
	Tags          string
	Keywords      string
	VoiceQueries  string
	TargetAreas   string
	PropertyTypes string
	IsFeatured    bool
	SortOrder     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const createFAQ = `INSERT INTO faqs (id, language, category, slug, question, answer_short, answer_long,
	tags, keywords, voice_queries, target_areas, property_types, is_featured, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateFAQ inserts an entry.
func (q *Queries) CreateFAQ(ctx context.Context, arg CreateFAQParams) error {
	_, err := q.db.ExecContext(ctx, createFAQ,
		arg.ID,
		arg.Language,
		arg.Category,
		arg.Slug,
		arg.Question,
		arg.AnswerShort,
		arg.AnswerLong,
		arg.Tags,
		arg.Keywords,
		arg.VoiceQueries,
		arg.TargetAreas,
		arg.PropertyTypes,
		arg.IsFeatured,
		arg.SortOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const createRelation = `INSERT INTO faq_relations (faq_id, related_faq_id, relation_type) VALUES (?, ?, ?)`

// CreateRelation inserts a relation between two entries.
func (q *Queries) CreateRelation(ctx context.Context, arg FAQRelation) error {
	_, err := q.db.ExecContext(ctx, createRelation, arg.FAQID, arg.RelatedFAQID, arg.RelationType)
	return err
}
