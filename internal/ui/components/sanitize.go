package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

var bidiControls = map[rune]struct{}{
	'\u202a': {},
	'\u202b': {},
	'\u202c': {},
	'\u202d': {},
	'\u202e': {},
	'\u2066': {},
	'\u2067': {},
	'\u2068': {},
	'\u2069': {},
	'\u200e': {},
	'\u200f': {},
}

// SanitizeText strips control characters and ANSI escape sequences from display strings.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	cleaned := ansi.Strip(input)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := bidiControls[r]; ok {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
}

// SanitizeOneLine sanitizes text and folds line breaks and tabs into single
// spaces, for labels and table cells.
func SanitizeOneLine(input string) string {
	cleaned := SanitizeText(input)
	if cleaned == "" {
		return cleaned
	}
	return strings.Join(strings.Fields(cleaned), " ")
}
