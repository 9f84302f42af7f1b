package search

import "github.com/quarry-app/quarry/core"

// SearchMonitor receives callbacks as a search moves through the pipeline.
// Implementations must be fast; hooks run synchronously on the search path.
type SearchMonitor interface {
	// Start is called once with the raw query before parsing begins.
	Start(rawQuery string)

	// AfterParse is called with the structured query and whether the
	// deterministic fallback was used instead of the interpreter.
	AfterParse(query core.ParsedQuery, usedFallback bool)

	// AfterFilter is called with the number of candidates that survived
	// filtering, out of the total collection size.
	AfterFilter(candidates, total int)

	// Finish is called once with the final result.
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterParse(_ core.ParsedQuery, _ bool) {}
func (n *noopMonitor) AfterFilter(_, _ int)                  {}
func (n *noopMonitor) Finish(_ *core.SearchResult)           {}
