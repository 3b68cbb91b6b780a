// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strings"
)

// NullStringFromValue creates a sql.NullString that is valid only when s
// has non-blank content.
func NullStringFromValue(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// StringFromNull returns the trimmed string of a valid NullString, or "".
func StringFromNull(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return strings.TrimSpace(ns.String)
}
