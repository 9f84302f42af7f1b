package search

import (
	"sort"
	"strings"
	"time"

	"github.com/quarry-app/quarry/core"
)

// rankItems orders scored items in place, descending. An explicit OrderBy
// sorts on that single field; otherwise each item gets a composite score
// blending relevance with usage history and the user's favorite tags.
func rankItems(scored []*core.ScoredItem, query core.ParsedQuery, prefs core.UserPreferences, now time.Time) []*core.ScoredItem {
	switch query.OrderBy {
	case core.OrderByRelevance:
		sortDescBy(scored, func(s *core.ScoredItem) int64 { return int64(s.Relevance) })
	case core.OrderByDate:
		sortDescBy(scored, func(s *core.ScoredItem) int64 { return s.Item.CreatedAt.UnixMicro() })
	case core.OrderByAccessCount:
		sortDescBy(scored, func(s *core.ScoredItem) int64 { return int64(s.Item.AccessCount) })
	case core.OrderByImportance:
		sortDescBy(scored, func(s *core.ScoredItem) int64 { return int64(s.Item.Importance) })
	default:
		favorites := lowerSet(prefs.FavoriteTags)
		composite := make(map[*core.ScoredItem]int64, len(scored))
		for _, s := range scored {
			composite[s] = compositeScore(s, prefs, favorites, now)
		}
		sortDescBy(scored, func(s *core.ScoredItem) int64 { return composite[s] })
	}
	return scored
}

// compositeScore blends relevance with access history, importance, content
// freshness, and favorite-tag affinity.
func compositeScore(s *core.ScoredItem, prefs core.UserPreferences, favorites map[string]bool, now time.Time) int64 {
	item := s.Item
	score := int64(s.Relevance)

	accessWeight := int64(1)
	if prefs.FavorFrequentlyAccessed {
		accessWeight = 2
	}
	score += int64(item.AccessCount) * accessWeight

	if prefs.FavorRecent && !item.LastAccessed.IsZero() {
		days := int64(now.Sub(item.LastAccessed).Hours() / 24)
		if bonus := 10 - days; bonus > 0 {
			score += bonus
		}
	}

	score += int64(item.Importance) * 5

	if now.Sub(item.CreatedAt) <= 7*24*time.Hour {
		score += 5
	}

	for _, tag := range item.Tags {
		if favorites[strings.ToLower(tag)] {
			score += 3
		}
	}
	return score
}

// sortDescBy sorts descending by key, keeping the original order for ties.
func sortDescBy(scored []*core.ScoredItem, key func(*core.ScoredItem) int64) {
	sort.SliceStable(scored, func(i, j int) bool {
		return key(scored[i]) > key(scored[j])
	})
}

func lowerSet(ss []string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[strings.ToLower(s)] = true
	}
	return set
}
