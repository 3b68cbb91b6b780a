// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content renders FAQ long answers from Markdown to safe HTML.
package content

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts Markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GFM tables, strikethrough and autolinks.
// Output is sanitized with bluemonday's UGC policy.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		policy: policy,
	}
}

// Render returns the sanitized HTML for src. Blank input renders to "".
func (r *Renderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

var stripPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from htmlSrc and collapses whitespace.
func PlainText(htmlSrc string) string {
	text := stripPolicy.Sanitize(htmlSrc)
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
