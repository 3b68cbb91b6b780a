// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the FAQ domain types served by costafaq.
package model

import (
	"slices"
	"time"
)

// DefaultLanguage is served when the requested language has no content.
const DefaultLanguage = "en"

// CategoryAll is the synthetic selector value meaning "no filtering".
// It is shared by the category, target area and property type selectors.
const CategoryAll = "all"

// Relation types stored in faq_relations.
const (
	RelationSimilar = "similar"
	RelationSeeAlso = "see_also"
)

// FAQEntry is a single question/answer pair in one language.
// Every entry belongs to exactly one language and one category.
type FAQEntry struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Category string `json:"category"` // FAQCategory.Key in the same language
	Slug     string `json:"slug"`

	Question       string `json:"question"`
	AnswerShort    string `json:"answer_short"`
	AnswerLong     string `json:"answer_long,omitempty"`      // Markdown source
	AnswerLongHTML string `json:"answer_long_html,omitempty"` // rendered and sanitized

	Tags          []string `json:"tags"`
	Keywords      []string `json:"keywords"`
	VoiceQueries  []string `json:"voice_queries"`
	TargetAreas   []string `json:"target_areas"`
	PropertyTypes []string `json:"property_types"`

	IsFeatured bool `json:"is_featured"`
	SortOrder  int  `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasVoiceQueries reports whether the entry carries answer-engine phrases.
func (e *FAQEntry) HasVoiceQueries() bool {
	return len(e.VoiceQueries) > 0
}

// FAQCategory groups entries within a language. Keys are expected to be
// consistent across languages but nothing enforces it.
type FAQCategory struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// FAQRelation links an entry to a related entry.
type FAQRelation struct {
	FAQID        string `json:"faq_id"`
	RelatedFAQID string `json:"related_faq_id"`
	RelationType string `json:"relation_type"`
}

// ReservedSlugs are path segments the API serves under /faqs/ ahead of
// /faqs/{slug}; an entry with one of these slugs would be unreachable.
var ReservedSlugs = []string{"featured", "voice", "schema", "keywords"}

// IsReservedSlug reports whether slug collides with a fixed /faqs/ route.
func IsReservedSlug(slug string) bool {
	return slices.Contains(ReservedSlugs, slug)
}

// IsSelectorAll reports whether a selector value disables its filter stage.
func IsSelectorAll(v string) bool {
	return v == "" || v == CategoryAll
}
