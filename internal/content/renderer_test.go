// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("The **NIE** is issued by the *Policía Nacional*.")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>NIE</strong>")
	assert.Contains(t, out, "<em>Policía Nacional</em>")
}

func TestRenderEmpty(t *testing.T) {
	out, err := NewRenderer().Render("   \n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderStripsScripts(t *testing.T) {
	out, err := NewRenderer().Render("Hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestRenderTablesAndLinks(t *testing.T) {
	src := "| Tax | Rate |\n|---|---|\n| ITP | 7% |\n\nSee https://www.agenciatributaria.es"
	out, err := NewRenderer().Render(src)
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `rel="nofollow`)
	assert.True(t, strings.Contains(out, `href="https://www.agenciatributaria.es"`), out)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <strong>world</strong></p>", "Hello world"},
		{"<p>Tom &amp; Jerry</p>\n\n<p>  again </p>", "Tom & Jerry again"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlainText(tt.in), tt.in)
	}
}
