// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/util"
)

// ValidationError describes one bad fixture record.
type ValidationError struct {
	Entity  string // category, faq or relation
	Ref     string // slug, key or record index
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Ref, e.Message)
}

// ValidationErrors lists every bad record of a fixture.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("seed validation failed (%d errors): %s", len(e), strings.Join(msgs, "; "))
}

// Validate checks a normalized fixture.
func Validate(f *File) ValidationErrors {
	var errs ValidationErrors
	add := func(entity, ref, msg string) {
		errs = append(errs, ValidationError{Entity: entity, Ref: ref, Message: msg})
	}

	categories := make(map[string]bool)
	for idx, c := range f.Categories {
		ref := c.Key
		if ref == "" {
			ref = "#" + strconv.Itoa(idx)
		}
		if !model.IsValidLangCode(c.Language) {
			add("category", ref, fmt.Sprintf("invalid language %q", c.Language))
		}
		switch c.Key {
		case "":
			add("category", ref, "missing key")
		case model.CategoryAll:
			add("category", ref, "key \"all\" is reserved")
		}
		if c.Name == "" {
			add("category", ref, "missing name")
		}
		k := slugKey(c.Language, c.Key)
		if categories[k] {
			add("category", ref, "duplicate key in "+c.Language)
		}
		categories[k] = true
	}

	slugs := make(map[string]bool)
	ids := make(map[string]bool)
	for idx, e := range f.FAQs {
		ref := e.Slug
		if ref == "" {
			ref = "#" + strconv.Itoa(idx)
		}
		if !model.IsValidLangCode(e.Language) {
			add("faq", ref, fmt.Sprintf("invalid language %q", e.Language))
		}
		if e.Question == "" {
			add("faq", ref, "missing question")
		}
		if e.AnswerShort == "" {
			add("faq", ref, "missing answer_short")
		}
		switch e.Category {
		case "":
			add("faq", ref, "missing category")
		case model.CategoryAll:
			add("faq", ref, "category \"all\" is reserved")
		}
		if e.Slug != "" && !util.IsValidSlug(e.Slug) {
			add("faq", ref, "invalid slug")
		}
		if model.IsReservedSlug(e.Slug) {
			add("faq", ref, fmt.Sprintf("slug %q is reserved", e.Slug))
		}
		k := slugKey(e.Language, e.Slug)
		if e.Slug != "" && slugs[k] {
			add("faq", ref, "duplicate slug in "+e.Language)
		}
		slugs[k] = true
		if ids[e.ID] {
			add("faq", ref, "duplicate id "+e.ID)
		}
		ids[e.ID] = true
	}

	for idx, r := range f.Relations {
		ref := "#" + strconv.Itoa(idx)
		if r.From == "" || r.To == "" {
			add("relation", ref, "from and to are required")
			continue
		}
		if r.From == r.To {
			add("relation", ref, "entry cannot relate to itself")
		}
		if r.Type != model.RelationSimilar && r.Type != model.RelationSeeAlso {
			add("relation", ref, fmt.Sprintf("unknown type %q", r.Type))
		}
		for _, slug := range []string{r.From, r.To} {
			if !slugs[slugKey(r.Language, slug)] {
				add("relation", ref, fmt.Sprintf("unknown faq %s/%s", r.Language, slug))
			}
		}
	}

	return errs
}
