package domain

import "strings"

// NormalizeText lowercases, collapses whitespace and strips trailing
// punctuation. The recognizer and the cache key derivation share this so a
// query and its cache entry always agree.
func NormalizeText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimRight(text, ".,!?;:")
}
