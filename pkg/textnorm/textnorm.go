// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied identifiers before they are
// compared or stored.
//
// # Usage
//
// Two visually identical usernames can differ in their code points (full-width
// forms, composed vs decomposed accents). Normalizing to NFKC before lookup and
// insert keeps the unique index meaningful.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Identifier trims surrounding whitespace and applies NFKC. Case is preserved.
func Identifier(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}

// Email normalizes like [Identifier] and lowercases the result.
func Email(s string) string {
	return strings.ToLower(Identifier(s))
}
