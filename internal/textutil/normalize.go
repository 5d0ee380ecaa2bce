// Package textutil provides the text normalization shared by the keyword
// classifier, the statistical classifier, and the training pipeline. All
// three must preprocess identically or predictions silently degrade.
package textutil

import "strings"

// Normalize lowercases the input, replaces every character that is not an
// ASCII letter or whitespace with a space, collapses runs of whitespace into
// a single space, and trims the result. Degenerate input maps to the empty
// string; the function never fails.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true // suppress leading spaces
	for _, r := range strings.ToLower(text) {
		isLetter := r >= 'a' && r <= 'z'
		if !isLetter {
			// Everything that is not an ASCII letter becomes a separator.
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokenize normalizes the input and splits it into whitespace-delimited
// tokens. Empty input yields a nil slice.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
