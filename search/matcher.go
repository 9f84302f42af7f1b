package search

import (
	"strings"

	"github.com/quarry-app/quarry/core"
)

// DefaultSynonyms is the built-in synonym table used by semantic matching.
// Lookups are symmetric at the group level: a keyword matches text that
// contains the keyword itself or any synonym in its group.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"meeting":  {"standup", "sync", "call", "discussion"},
		"note":     {"memo", "record", "entry"},
		"task":     {"todo", "chore", "action item"},
		"project":  {"initiative", "effort", "workstream"},
		"idea":     {"thought", "concept", "brainstorm"},
		"health":   {"fitness", "wellness", "exercise"},
		"finance":  {"money", "budget", "spending"},
		"deadline": {"due date", "cutoff"},
	}
}

// matchExact reports whether text contains keyword as a contiguous
// substring. Both sides are expected to be lowercased by the caller.
func matchExact(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	return strings.Contains(text, keyword)
}

// matchFuzzy splits the keyword on whitespace and reports whether any
// sub-term appears in text. Deliberately permissive: a multi-word keyword
// matches on any one of its words. No edit-distance tolerance.
func matchFuzzy(text, keyword string) bool {
	for _, term := range strings.Fields(keyword) {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// matchSemantic is matchExact widened by the synonym table: the keyword
// matches if it or any synonym in its group appears as a substring.
// Keywords without a table entry behave like matchExact.
func matchSemantic(text, keyword string, synonyms map[string][]string) bool {
	if matchExact(text, keyword) {
		return true
	}
	for _, alt := range synonyms[keyword] {
		if matchExact(text, alt) {
			return true
		}
	}
	return false
}

// matchKeyword dispatches on the search mode. Unknown modes fall back to
// fuzzy, the least surprising default.
func matchKeyword(text, keyword string, mode core.SearchMode, synonyms map[string][]string) bool {
	switch mode {
	case core.ModeExact:
		return matchExact(text, keyword)
	case core.ModeSemantic:
		return matchSemantic(text, keyword, synonyms)
	default:
		return matchFuzzy(text, keyword)
	}
}
