package ai

import "context"

// QueryInterpreter turns a free-text search query into a structured query.
// Implementations must be thread-safe for concurrent use.
type QueryInterpreter interface {
	// InterpretQuery analyzes a natural-language query and extracts its
	// keywords, boolean operator, search mode, filters, and preferred
	// ordering. The returned value is the raw interpretation: callers are
	// responsible for validating it against their domain rules.
	// Returns an error if interpretation fails for any reason (transport,
	// timeout, or unparseable output).
	InterpretQuery(ctx context.Context, query string) (*StructuredQuery, error)
}

// StructuredQuery is the raw structured interpretation of a search query as
// produced by a text-completion service, before domain validation.
type StructuredQuery struct {
	// Keywords are the search terms extracted from the query, in order.
	Keywords []string

	// Operator is the boolean combination rule: "AND", "OR", or "NOT".
	Operator string

	// SearchMode is the matching strictness: "exact", "fuzzy", or "semantic".
	SearchMode string

	// Filters narrows the candidate set before keyword matching.
	Filters StructuredFilters

	// OrderBy is the requested ordering: "relevance", "date", "access_count",
	// "importance", or empty for the default personalized ordering.
	OrderBy string
}

// StructuredFilters is the raw filter block of a StructuredQuery.
type StructuredFilters struct {
	// Tags restricts results to items carrying at least one of these tags.
	Tags []string

	// Recent restricts results to items created within the last day.
	Recent bool

	// Importance is a minimum importance threshold, 0 meaning no threshold.
	Importance int

	// SourceType restricts results to items with this exact source type.
	SourceType string
}
