package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
// Lookups and uniqueness checks use the normalized form; the stored Email keeps the user's spelling.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName trims surrounding whitespace and collapses inner runs of whitespace.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
