package domain

import "strings"

// NormalizeText is the canonical form of lemma, word and part-of-speech text:
// lowercase, no surrounding whitespace, and every inner whitespace run
// (spaces, tabs, no-break spaces) collapsed to a single space.
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}
	return strings.Join(fields, " ")
}

// SameLemma reports whether a generated lemma names the same headword as the
// requested one, ignoring case and whitespace differences.
func SameLemma(generated, requested string) bool {
	return NormalizeText(generated) == NormalizeText(requested)
}
