package search

import (
	"strings"

	"github.com/quarry-app/quarry/core"
)

// scoreItems assigns each item an additive relevance score. The raw query
// string is the primary signal and the parsed keywords a secondary one.
// Items with zero signal keep a score of 0 and stay in the result; exclusion
// is the filter's job, not the scorer's.
func scoreItems(items []*core.KnowledgeItem, query core.ParsedQuery, rawQuery string) []*core.ScoredItem {
	raw := strings.ToLower(strings.TrimSpace(rawQuery))
	keywords := lowerAll(query.Keywords)

	scored := make([]*core.ScoredItem, 0, len(items))
	for _, item := range items {
		text := buildSearchText(item)
		score := 0
		if raw != "" {
			if strings.Contains(strings.ToLower(item.Title), raw) {
				score += 10
			}
			if item.Summary != "" && strings.Contains(strings.ToLower(item.Summary), raw) {
				score += 5
			}
			score += 2 * strings.Count(text, raw)
			for _, tag := range item.Tags {
				if strings.Contains(strings.ToLower(tag), raw) {
					score += 3
				}
			}
		}
		for _, kw := range keywords {
			score += strings.Count(text, kw)
		}
		scored = append(scored, &core.ScoredItem{Item: item, Relevance: score})
	}
	return scored
}
