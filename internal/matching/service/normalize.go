package service

import (
	"regexp"
	"strings"
	"unicode"
)

// Channel listings decorate one product with shop prefixes, size suffixes
// and SKU fragments: 【公式】, （大）, type codes, JAN digits. Normalize
// strips all of that down to the core name so titles of the same product
// compare equal.

// innermost parenthesized segment, half- or full-width, contents included;
// the loop in Normalize peels nesting outward
var reParen = regexp.MustCompile(`[(（][^(（)）]*[)）]`)

// hyphen family: ASCII hyphen, unicode dashes, minus, long-vowel mark
var hyphens = "-‐‑‒–—―−ー"

// corner/lenticular brackets and their quotes, plus stray unmatched parens
var brackets = "【】『』「」()（）"

// periods, commas, colons and their full-width forms
var punct = ".,:：．，。、･・"

// Normalize canonicalizes a raw channel title for comparison. Pure and
// idempotent; empty input yields empty output. Applied in order:
// whitespace, parenthesized segments, hyphens, brackets, ASCII/full-width
// digits and letters, punctuation, lowercase.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) { // covers U+3000 ideographic space
			return -1
		}
		return r
	}, raw)

	for {
		next := reParen.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(hyphens, r):
			return -1
		case strings.ContainsRune(brackets, r):
			return -1
		case r >= '0' && r <= '9', r >= '０' && r <= '９':
			return -1
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			return -1
		case r >= 'Ａ' && r <= 'Ｚ', r >= 'ａ' && r <= 'ｚ':
			return -1
		case strings.ContainsRune(punct, r):
			return -1
		}
		return r
	}, s)

	return strings.ToLower(s)
}
