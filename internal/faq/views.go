// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"cmp"
	"slices"
	"strings"

	"github.com/olegiv/costafaq/internal/model"
)

// Default view sizes, used when a caller does not ask for a size.
const (
	DefaultFeaturedLimit = 6
	DefaultRelatedLimit  = 3
)

// Featured returns up to limit featured entries by ascending sort order.
// A non-positive limit yields an empty list.
func Featured(entries []model.FAQEntry, limit int) []model.FAQEntry {
	if limit <= 0 {
		return []model.FAQEntry{}
	}

	out := make([]model.FAQEntry, 0, limit)
	for _, e := range entries {
		if e.IsFeatured {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.FAQEntry) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// VoiceSearch returns the entries that carry voice queries.
func VoiceSearch(entries []model.FAQEntry) []model.FAQEntry {
	out := make([]model.FAQEntry, 0)
	for _, e := range entries {
		if e.HasVoiceQueries() {
			out = append(out, e)
		}
	}
	return out
}

// ByKeyword returns the entries with a keyword containing keyword, ignoring case.
func ByKeyword(entries []model.FAQEntry, keyword string) []model.FAQEntry {
	needle := strings.ToLower(keyword)
	out := make([]model.FAQEntry, 0)
	for _, e := range entries {
		if anyContains(e.Keywords, needle) {
			out = append(out, e)
		}
	}
	return out
}

// TargetAreas returns the sorted distinct target areas of entries.
func TargetAreas(entries []model.FAQEntry) []string {
	return union(entries, func(e model.FAQEntry) []string { return e.TargetAreas })
}

// PropertyTypes returns the sorted distinct property types of entries.
func PropertyTypes(entries []model.FAQEntry) []string {
	return union(entries, func(e model.FAQEntry) []string { return e.PropertyTypes })
}

func union(entries []model.FAQEntry, field func(model.FAQEntry) []string) []string {
	out := make([]string, 0)
	for _, e := range entries {
		out = append(out, field(e)...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// CategoryCounts counts entries per category key. The "all" key holds the total.
func CategoryCounts(entries []model.FAQEntry) map[string]int {
	counts := map[string]int{model.CategoryAll: len(entries)}
	for _, e := range entries {
		counts[e.Category]++
	}
	return counts
}
