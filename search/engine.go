package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/quarry-app/quarry/ai"
	"github.com/quarry-app/quarry/core"
)

const defaultParseTimeout = 10 * time.Second

// Engine is the public entry point for knowledge-base retrieval. It operates
// on the full item collection passed to each call and holds no per-search
// state, so a single Engine is safe for concurrent use.
type Engine struct {
	interpreter  ai.QueryInterpreter
	synonyms     map[string][]string
	parseTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithSynonyms replaces the built-in synonym table used by semantic matching.
func WithSynonyms(synonyms map[string][]string) Option {
	return func(e *Engine) error {
		if synonyms == nil {
			synonyms = map[string][]string{}
		}
		e.synonyms = synonyms
		return nil
	}
}

// WithParseTimeout bounds the time spent waiting for the query interpreter
// before falling back to the deterministic query. Default is 10 seconds.
func WithParseTimeout(d time.Duration) Option {
	return func(e *Engine) error {
		if d > 0 {
			e.parseTimeout = d
		}
		return nil
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now != nil {
			e.now = now
		}
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(interpreter ai.QueryInterpreter, opts ...Option) (*Engine, error) {
	if interpreter == nil {
		return nil, ErrInterpreterRequired
	}

	e := &Engine{
		interpreter:  interpreter,
		synonyms:     DefaultSynonyms(),
		parseTimeout: defaultParseTimeout,
		logger:       slog.Default(),
		now:          time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// ParseQuery turns a free-text query into a structured query. Any
// interpreter failure, timeout, or invalid interpretation degrades to the
// deterministic fallback; ParseQuery never fails.
//
// The second return value reports whether the fallback was used.
func (e *Engine) ParseQuery(ctx context.Context, rawQuery string) (core.ParsedQuery, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.parseTimeout)
	defer cancel()

	structured, err := e.interpreter.InterpretQuery(ctx, rawQuery)
	if err != nil {
		e.logger.Warn("query interpretation failed, using fallback", "query", rawQuery, "err", err)
		return core.FallbackQuery(rawQuery), true
	}

	parsed := core.ParsedQuery{
		Keywords: structured.Keywords,
		Operator: core.Operator(structured.Operator),
		Mode:     core.SearchMode(structured.SearchMode),
		Filters: core.QueryFilters{
			Tags:       structured.Filters.Tags,
			Recent:     structured.Filters.Recent,
			Importance: structured.Filters.Importance,
			SourceType: structured.Filters.SourceType,
		},
		OrderBy: core.OrderBy(structured.OrderBy),
	}
	if len(parsed.Keywords) == 0 {
		parsed.Keywords = []string{rawQuery}
	}
	if err := core.ValidateParsedQuery(&parsed); err != nil {
		e.logger.Warn("interpreter returned invalid query, using fallback", "query", rawQuery, "err", err)
		return core.FallbackQuery(rawQuery), true
	}
	return parsed, false
}

// Search runs the full parse, filter, score, rank pipeline over items.
// It never returns an error: recoverable failures degrade to the fallback
// interpretation or an unpersonalized ranking, and an empty candidate set
// yields an empty result with the parsed query populated so callers can
// explain why nothing matched.
func (e *Engine) Search(ctx context.Context, rawQuery string, items []*core.KnowledgeItem, prefs core.UserPreferences) *core.SearchResult {
	return e.SearchWithMonitor(ctx, rawQuery, items, prefs, nil)
}

// SearchWithMonitor is Search with per-stage monitoring callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, rawQuery string, items []*core.KnowledgeItem, prefs core.UserPreferences, monitor SearchMonitor) *core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(rawQuery)

	parsed, usedFallback := e.ParseQuery(ctx, rawQuery)
	monitor.AfterParse(parsed, usedFallback)

	now := e.now()
	candidates := filterItems(items, parsed, e.synonyms, now)
	monitor.AfterFilter(len(candidates), len(items))

	scored := scoreItems(candidates, parsed, rawQuery)
	ranked := rankItems(scored, parsed, prefs, now)

	result := &core.SearchResult{
		Results:    ranked,
		Query:      parsed,
		TotalCount: len(ranked),
	}
	monitor.Finish(result)

	e.logger.Debug("search completed",
		"query", rawQuery,
		"keywords", parsed.Keywords,
		"operator", parsed.Operator,
		"candidates", len(candidates),
		"total", len(items),
	)
	return result
}
