// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"strings"
	"unicode/utf8"

	"github.com/olegiv/costafaq/internal/model"
)

// Filter is the user-controlled narrowing of a working set. An empty or
// "all" selector leaves its dimension unfiltered.
type Filter struct {
	Category     string `json:"category"`
	TargetArea   string `json:"target_area"`
	PropertyType string `json:"property_type"`
	Search       string `json:"search"`
}

// IsZero reports whether the filter lets every entry through.
func (f Filter) IsZero() bool {
	return model.IsSelectorAll(f.Category) &&
		model.IsSelectorAll(f.TargetArea) &&
		model.IsSelectorAll(f.PropertyType) &&
		len(SearchTerms(f.Search)) == 0
}

// Apply returns the entries matching every active stage, in input order.
// The input slice is not modified.
func (f Filter) Apply(entries []model.FAQEntry) []model.FAQEntry {
	area := strings.ToLower(f.TargetArea)
	propType := strings.ToLower(f.PropertyType)
	terms := SearchTerms(f.Search)

	out := make([]model.FAQEntry, 0, len(entries))
	for _, e := range entries {
		if !model.IsSelectorAll(f.Category) && e.Category != f.Category {
			continue
		}
		if !model.IsSelectorAll(f.TargetArea) && !anyContains(e.TargetAreas, area) {
			continue
		}
		if !model.IsSelectorAll(f.PropertyType) && !anyContains(e.PropertyTypes, propType) {
			continue
		}
		if len(terms) > 0 && !matchesSearch(e, terms) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SearchTerms lower-cases s, splits it on whitespace and drops terms of a
// single character.
func SearchTerms(s string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(s)) {
		if utf8.RuneCountInString(t) > 1 {
			terms = append(terms, t)
		}
	}
	return terms
}

// matchesSearch reports whether any term hits the entry. Terms are OR-ed.
func matchesSearch(e model.FAQEntry, terms []string) bool {
	haystack := searchText(e)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
		for _, list := range [][]string{e.Keywords, e.VoiceQueries, e.TargetAreas, e.PropertyTypes} {
			if anyContains(list, term) {
				return true
			}
		}
	}
	return false
}

func searchText(e model.FAQEntry) string {
	parts := []string{e.Question, e.AnswerShort, e.AnswerLong}
	parts = append(parts, e.Keywords...)
	parts = append(parts, e.VoiceQueries...)
	parts = append(parts, e.TargetAreas...)
	parts = append(parts, e.PropertyTypes...)
	parts = append(parts, e.Tags...)
	parts = append(parts, e.Category)
	return strings.ToLower(strings.Join(parts, " "))
}

// anyContains reports whether any item, lower-cased, contains needle.
// needle must already be lower-case.
func anyContains(items []string, needle string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}
