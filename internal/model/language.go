// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Language describes a content language offered by the site.
type Language struct {
	Code       string `json:"code"`        // ISO 639-1: en, es, de
	Name       string `json:"name"`        // English, Spanish, German
	NativeName string `json:"native_name"` // English, Español, Deutsch
}

// CommonLanguages lists the languages the Costa del Sol market is served in.
var CommonLanguages = []Language{
	{"en", "English", "English"},
	{"es", "Spanish", "Español"},
	{"de", "German", "Deutsch"},
	{"fr", "French", "Français"},
	{"nl", "Dutch", "Nederlands"},
	{"sv", "Swedish", "Svenska"},
	{"no", "Norwegian", "Norsk"},
	{"da", "Danish", "Dansk"},
	{"fi", "Finnish", "Suomi"},
	{"ru", "Russian", "Русский"},
	{"it", "Italian", "Italiano"},
	{"pl", "Polish", "Polski"},
}

// IsValidLangCode reports whether code is a two-letter lowercase ISO 639-1 code.
func IsValidLangCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}

// NormalizeLangCode lowercases and trims a language code, reducing region
// subtags ("es-ES" -> "es"). It returns "" when the result is not valid.
func NormalizeLangCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if !IsValidLangCode(code) {
		return ""
	}
	return code
}

// LookupLanguage returns the CommonLanguages entry for code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range CommonLanguages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
