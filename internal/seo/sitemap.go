// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the answer-engine artifacts for FAQ content: the
// FAQPage structured data, the sitemap and robots.txt.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/costafaq/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used for FAQ pages.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects FAQ URLs for the sitemap.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// FAQIndexPath is the path of a language's FAQ page.
func FAQIndexPath(lang string) string {
	return "/" + lang + "/faq"
}

// FAQPath is the path of a single entry.
func FAQPath(lang, slug string) string {
	return FAQIndexPath(lang) + "/" + url.PathEscape(slug)
}

// AddLanguage adds the FAQ index of lang, one URL per category and one per
// entry. The index lastmod is the newest entry update.
func (b *SitemapBuilder) AddLanguage(lang string, entries []model.FAQEntry, categories []model.FAQCategory) {
	var newest time.Time
	for _, e := range entries {
		if e.UpdatedAt.After(newest) {
			newest = e.UpdatedAt
		}
	}

	b.add(FAQIndexPath(lang), newest, ChangeFreqDaily, "0.9")

	for _, c := range categories {
		b.add(FAQIndexPath(lang)+"?category="+url.QueryEscape(c.Key), time.Time{}, ChangeFreqWeekly, "0.6")
	}

	for _, e := range entries {
		if e.Slug == "" {
			continue
		}
		priority := "0.7"
		if e.IsFeatured {
			priority = "0.8"
		}
		b.add(FAQPath(lang, e.Slug), e.UpdatedAt, ChangeFreqMonthly, priority)
	}
}

func (b *SitemapBuilder) add(path string, lastMod time.Time, freq ChangeFreq, priority string) {
	u := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: freq,
		Priority:   priority,
	}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
