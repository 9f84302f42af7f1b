package openai

import "strings"

// scrubString collapses internal whitespace and trims the query text before
// it is embedded in a chat message. Punctuation stays untouched: quoting is
// how users ask for exact matching, so the model must see it as typed.
func scrubString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
