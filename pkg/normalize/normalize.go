// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied identity strings.
//
// # Usage
//
// Usernames and emails are stored in exactly one canonical form so that
// uniqueness checks and login lookups behave the same regardless of how the
// client typed them.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Username converts an arbitrary Unicode username into its canonical stored form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Trims surrounding whitespace.
func Username(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase and trim
	return strings.ToLower(strings.TrimSpace(result))
}

// Email lowercases and trims an email address.
//
// Accents are preserved: internationalized mailbox names are legal and the
// address is only ever compared against itself.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
