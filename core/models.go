package core

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// IDs are opaque strings, typically derived from content hashes.
type ID string

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// Source types describe how a knowledge item entered the knowledge base.
const (
	SourceManual     = "manual"
	SourceNote       = "note"
	SourceAIAnalysis = "ai_analysis"
)

// KnowledgeItem is a stored, searchable unit of knowledge.
type KnowledgeItem struct {
	Id           ID
	Title        string
	Content      string
	Summary      string   // Optional short abstract
	KeyPoints    []string // Optional bullet takeaways
	Tags         []string
	SourceType   string // One of the Source* constants, empty if unknown
	Category     string
	Importance   int       // 0 (unset) to 10
	AccessCount  int
	LastAccessed time.Time // Zero value means never accessed
	CreatedAt    time.Time // Immutable once set
	UpdatedAt    time.Time
}

// Operator combines keyword match results across a query's keywords.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
	OperatorNot Operator = "NOT"
)

// SearchMode selects the matching strictness applied per keyword.
type SearchMode string

const (
	ModeExact    SearchMode = "exact"
	ModeFuzzy    SearchMode = "fuzzy"
	ModeSemantic SearchMode = "semantic"
)

// OrderBy selects an explicit result ordering. The empty value means
// "use the composite personalized score".
type OrderBy string

const (
	OrderByRelevance   OrderBy = "relevance"
	OrderByDate        OrderBy = "date"
	OrderByAccessCount OrderBy = "access_count"
	OrderByImportance  OrderBy = "importance"
	OrderByComposite   OrderBy = ""
)

// QueryFilters narrows the candidate set before keyword matching.
// The zero value applies no filtering.
type QueryFilters struct {
	Tags       []string // Item must carry a tag containing one of these
	Recent     bool     // Restrict to items created within the last day
	Importance int      // Minimum importance, 0 disables the threshold
	SourceType string   // Exact source type match
}

// Empty reports whether the filters apply no restriction.
func (f QueryFilters) Empty() bool {
	return len(f.Tags) == 0 && !f.Recent && f.Importance == 0 && f.SourceType == ""
}

// ParsedQuery is the structured, machine-actionable interpretation of a
// free-text search request.
//
// Keywords is never empty: when interpretation yields no keywords, the
// original query string is used as the sole keyword.
type ParsedQuery struct {
	Keywords []string
	Operator Operator
	Mode     SearchMode
	Filters  QueryFilters
	OrderBy  OrderBy
}

// FallbackQuery is the deterministic interpretation used when the
// text-completion service is unavailable or returns invalid output.
func FallbackQuery(raw string) ParsedQuery {
	return ParsedQuery{
		Keywords: []string{raw},
		Operator: OperatorOr,
		Mode:     ModeFuzzy,
		OrderBy:  OrderByRelevance,
	}
}

// UserPreferences is a lightweight profile derived from behavior events.
// It is recomputed on demand and never edited directly by the user.
type UserPreferences struct {
	FavorFrequentlyAccessed bool
	FavorRecent             bool
	FavoriteTags            []string // Up to 5 tags, most frequent first
}

// BehaviorEvent is an immutable log record of one search interaction.
type BehaviorEvent struct {
	Id        ID
	Query     string   // Raw query text the user searched for
	ItemId    ID       // Knowledge item the user acted on
	UserId    string   // Empty for single-user installations
	Tags      []string // Tags of the selected item, when known
	Timestamp time.Time
}

// ScoredItem pairs a knowledge item with its relevance score.
type ScoredItem struct {
	Item      *KnowledgeItem
	Relevance int
}

// SearchResult is the outcome of one search: the ranked items plus the
// structured query so callers can explain the interpretation to the user.
type SearchResult struct {
	Results    []*ScoredItem
	Query      ParsedQuery
	TotalCount int
}
