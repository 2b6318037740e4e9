// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied identifiers and display labels.
//
// # Usage
//
// Emails and usernames are normalized before any uniqueness check so that
// visually identical input always maps to the same stored value.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// fold performs full Unicode case folding (ß → ss, K → k).
	fold = cases.Fold()
	// title capitalizes every word of a label.
	title = cases.Title(language.English)
)

// Email returns the canonical form of an email address.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFC.
// 3. Applies Unicode case folding.
func Email(s string) string {
	result := norm.NFC.String(strings.TrimSpace(s))
	return fold.String(result)
}

// Username returns the canonical form of a username.
//
// Case is preserved; only whitespace is trimmed and the runes are composed
// to NFC so "é" typed two different ways is the same name.
func Username(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Label turns a machine key into a display label ("now_playing" → "Now Playing").
func Label(key string) string {
	return title.String(strings.ReplaceAll(key, "_", " "))
}
