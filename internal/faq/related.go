// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"context"
	"log/slog"

	"github.com/olegiv/costafaq/internal/model"
)

// RelatedOptions tunes Related.
type RelatedOptions struct {
	// FallbackOnEmpty also falls back to same-category entries when the
	// relation lookup succeeds with no rows. By default only errors do.
	FallbackOnEmpty bool

	Logger *slog.Logger
}

// Related returns up to limit entries related to entry. It never fails: a
// lookup error degrades to other entries of the same category in ws. A
// non-positive limit yields an empty list without a lookup.
func Related(ctx context.Context, src Source, ws *WorkingSet, entry model.FAQEntry, limit int, opts RelatedOptions) []model.FAQEntry {
	if limit <= 0 {
		return []model.FAQEntry{}
	}

	related, err := src.ListRelated(ctx, entry.ID, limit)
	switch {
	case err != nil:
		logger := opts.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("related faq lookup failed, using same category",
			"faq_id", entry.ID,
			"category", entry.Category,
			"error", err,
		)
	case len(related) == 0 && opts.FallbackOnEmpty:
	default:
		if related == nil {
			related = []model.FAQEntry{}
		}
		if len(related) > limit {
			related = related[:limit]
		}
		return related
	}

	return sameCategory(ws, entry, limit)
}

func sameCategory(ws *WorkingSet, entry model.FAQEntry, limit int) []model.FAQEntry {
	out := make([]model.FAQEntry, 0, limit)
	if ws == nil {
		return out
	}
	for _, e := range ws.FAQs {
		if len(out) == limit {
			break
		}
		if e.Category == entry.Category && e.ID != entry.ID {
			out = append(out, e)
		}
	}
	return out
}
