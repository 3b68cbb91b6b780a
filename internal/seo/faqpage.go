// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"

	"github.com/olegiv/costafaq/internal/content"
	"github.com/olegiv/costafaq/internal/model"
)

// SiteConfig holds the site identity used in structured data.
type SiteConfig struct {
	SiteURL  string
	SiteName string
}

// FAQPageSchema is schema.org FAQPage structured data.
type FAQPageSchema struct {
	Context    string           `json:"@context"`
	Type       string           `json:"@type"`
	Name       string           `json:"name,omitempty"`
	URL        string           `json:"url,omitempty"`
	InLanguage string           `json:"inLanguage"`
	MainEntity []QuestionSchema `json:"mainEntity"`
}

// QuestionSchema is one schema.org Question.
type QuestionSchema struct {
	Type           string       `json:"@type"`
	Name           string       `json:"name"`
	URL            string       `json:"url,omitempty"`
	Keywords       string       `json:"keywords,omitempty"`
	AcceptedAnswer AnswerSchema `json:"acceptedAnswer"`
}

// AnswerSchema is one schema.org Answer.
type AnswerSchema struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// BuildFAQPageSchema returns the FAQPage JSON-LD for entries in lang.
// Answer text is the short answer followed by the plain-text long answer.
func BuildFAQPageSchema(lang string, entries []model.FAQEntry, site SiteConfig) ([]byte, error) {
	siteURL := strings.TrimSuffix(site.SiteURL, "/")

	page := FAQPageSchema{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		Name:       site.SiteName,
		InLanguage: lang,
		MainEntity: make([]QuestionSchema, 0, len(entries)),
	}
	if siteURL != "" {
		page.URL = siteURL + FAQIndexPath(lang)
	}

	for _, e := range entries {
		text := e.AnswerShort
		if long := content.PlainText(e.AnswerLongHTML); long != "" {
			text += " " + long
		}

		q := QuestionSchema{
			Type:           "Question",
			Name:           e.Question,
			Keywords:       strings.Join(e.Keywords, ", "),
			AcceptedAnswer: AnswerSchema{Type: "Answer", Text: text},
		}
		if siteURL != "" && e.Slug != "" {
			q.URL = siteURL + FAQPath(lang, e.Slug)
		}
		page.MainEntity = append(page.MainEntity, q)
	}

	return json.MarshalIndent(page, "", "  ")
}
