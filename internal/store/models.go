// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// FAQ is a raw faqs row. List columns hold JSON arrays as text.
type FAQ struct {
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

// FAQCategory is a raw faq_categories row.
type FAQCategory struct {
	ID          string
	CategoryKey string
	Language    string
	Name        string
	Description sql.NullString
	Icon        sql.NullString
	SortOrder   int64
}

// FAQRelation is a raw faq_relations row.
type FAQRelation struct {
	FAQID        string
	RelatedFAQID string
	RelationType string
}

// LanguageCount is the number of FAQ rows stored for a language.
type LanguageCount struct {
	Language string
	Count    int64
}
