// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
// Hangul and other non-Latin letters are preserved so that Korean
// titles slug into readable, percent-encodable path segments.
package slug

import (
	"strings"
	"unicode"
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
// Example: "호텔 운영 전략" → "호텔-운영-전략"
func Generate(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // Suppress leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen && (unicode.IsSpace(r) || r == '-' || r == '_'):
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// WithFallback generates a slug and substitutes fallback when the
// title produces nothing usable (for example, all punctuation).
func WithFallback(s, fallback string) string {
	if slug := Generate(s); slug != "" {
		return slug
	}
	return fallback
}
