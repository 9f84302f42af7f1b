package search

import (
	"strings"
	"time"

	"github.com/quarry-app/quarry/core"
)

const recentWindow = 24 * time.Hour

// filterItems returns the items that satisfy the query's structured filters
// and its boolean keyword condition. The input slice is never mutated.
func filterItems(items []*core.KnowledgeItem, query core.ParsedQuery, synonyms map[string][]string, now time.Time) []*core.KnowledgeItem {
	keywords := lowerAll(query.Keywords)
	var out []*core.KnowledgeItem
	for _, item := range items {
		if item == nil {
			continue
		}
		if !passesFilters(item, query.Filters, now) {
			continue
		}
		if !matchesKeywords(buildSearchText(item), keywords, query.Operator, query.Mode, synonyms) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func passesFilters(item *core.KnowledgeItem, f core.QueryFilters, now time.Time) bool {
	if len(f.Tags) > 0 && !hasTagMatch(item.Tags, f.Tags) {
		return false
	}
	if f.Recent && now.Sub(item.CreatedAt) > recentWindow {
		return false
	}
	if f.Importance > 0 && item.Importance < f.Importance {
		return false
	}
	if f.SourceType != "" && item.SourceType != f.SourceType {
		return false
	}
	return true
}

// hasTagMatch reports whether any item tag contains any wanted tag,
// case-insensitively. Containment rather than equality lets "work" find
// items tagged "workout" or "work-log".
func hasTagMatch(itemTags, wanted []string) bool {
	for _, it := range itemTags {
		it = strings.ToLower(it)
		for _, w := range wanted {
			if w == "" {
				continue
			}
			if strings.Contains(it, strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}

// matchesKeywords evaluates the boolean keyword condition against the
// item's search text. NOT treats the first keyword as the required term and
// every remaining keyword as an exclusion.
func matchesKeywords(text string, keywords []string, op core.Operator, mode core.SearchMode, synonyms map[string][]string) bool {
	if len(keywords) == 0 {
		return true
	}
	switch op {
	case core.OperatorAnd:
		for _, kw := range keywords {
			if !matchKeyword(text, kw, mode, synonyms) {
				return false
			}
		}
		return true
	case core.OperatorNot:
		if !matchKeyword(text, keywords[0], mode, synonyms) {
			return false
		}
		for _, kw := range keywords[1:] {
			if matchKeyword(text, kw, mode, synonyms) {
				return false
			}
		}
		return true
	default: // OR
		for _, kw := range keywords {
			if matchKeyword(text, kw, mode, synonyms) {
				return true
			}
		}
		return false
	}
}

func lowerAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
