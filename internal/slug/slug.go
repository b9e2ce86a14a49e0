// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// nonAlphanumeric matches anything that isn't an ASCII letter, digit,
	// space, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Bengali headlines produce an empty ASCII slug, so when stripping leaves
// nothing the unicode letters are kept instead; modern browsers and
// Postgres handle percent-encoded Bengali slugs fine.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	ascii := nonAlphanumeric.ReplaceAllString(result, "")
	ascii = strings.ReplaceAll(ascii, " ", "-")
	ascii = multipleHyphens.ReplaceAllString(ascii, "-")
	ascii = strings.Trim(ascii, "-")
	if ascii != "" {
		return ascii
	}
	return generateUnicode(result)
}

// generateUnicode keeps unicode letters, digits, and combining marks,
// replacing everything else with hyphens. Marks matter for Bengali: vowel
// signs and the virama are Mn/Mc runes, and dropping them would tear
// conjuncts apart.
func generateUnicode(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
