// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import "errors"

// LoadFailedMessage is the generic message shown when a load fails.
// Store details are logged, never displayed.
const LoadFailedMessage = "Failed to load FAQs"

// InvalidLanguageMessage is shown when the requested language code is malformed.
const InvalidLanguageMessage = "Invalid language"

var (
	// ErrLoadFailed wraps every store error that aborts a working set load.
	ErrLoadFailed = errors.New("failed to load FAQs")

	// ErrInvalidLanguage is returned for language codes that are not ISO 639-1.
	ErrInvalidLanguage = errors.New("invalid language code")

	// ErrNotFound is returned when an entry is not in the working set.
	ErrNotFound = errors.New("faq not found")

	// ErrStaleResponse is returned by Browser.SetLanguage when a newer
	// language change superseded the load.
	ErrStaleResponse = errors.New("stale response discarded")
)
