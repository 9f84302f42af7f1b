package search

import (
	"strings"

	"github.com/quarry-app/quarry/core"
)

// buildSearchText concatenates an item's title, content, summary, and tags,
// lowercased, into the single haystack keyword matching runs against.
func buildSearchText(item *core.KnowledgeItem) string {
	var b strings.Builder
	b.WriteString(item.Title)
	b.WriteByte('\n')
	b.WriteString(item.Content)
	b.WriteByte('\n')
	b.WriteString(item.Summary)
	for _, t := range item.Tags {
		b.WriteByte('\n')
		b.WriteString(t)
	}
	return strings.ToLower(b.String())
}
