// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidLangCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"es", true},
		{"EN", false},
		{"e", false},
		{"eng", false},
		{"e1", false},
		{"", false},
		{"es-ES", false},
	}

	for _, tt := range tests {
		if got := IsValidLangCode(tt.code); got != tt.want {
			t.Errorf("IsValidLangCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestNormalizeLangCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{" ES ", "es"},
		{"es-ES", "es"},
		{"pt_BR", "pt"},
		{"english", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeLangCode(tt.in); got != tt.want {
			t.Errorf("NormalizeLangCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupLanguage(t *testing.T) {
	lang, ok := LookupLanguage("sv")
	if !ok {
		t.Fatal("expected sv to be known")
	}
	if lang.NativeName != "Svenska" {
		t.Errorf("NativeName = %q, want Svenska", lang.NativeName)
	}

	if _, ok := LookupLanguage("xx"); ok {
		t.Error("expected xx to be unknown")
	}
}
