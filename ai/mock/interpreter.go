package mock

import (
	"context"
	"strings"

	"github.com/quarry-app/quarry/ai"
)

// MockInterpreter is a test double for ai.QueryInterpreter.
// It allows custom behavior injection via function fields.
type MockInterpreter struct {
	// InterpretQueryFunc is called by InterpretQuery if set.
	// If nil, uses default connective-splitting behavior.
	InterpretQueryFunc func(ctx context.Context, query string) (*ai.StructuredQuery, error)

	callCount int
}

// NewMockInterpreter creates a mock interpreter with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockInterpreter() *MockInterpreter {
	return &MockInterpreter{}
}

// InterpretQuery produces a simple structured interpretation of the query.
// Default behavior: splits on whitespace, treats "and"/"or"/"not" as
// operators, and keeps the remaining words as keywords.
func (m *MockInterpreter) InterpretQuery(ctx context.Context, query string) (*ai.StructuredQuery, error) {
	m.callCount++

	if m.InterpretQueryFunc != nil {
		return m.InterpretQueryFunc(ctx, query)
	}

	operator := "OR"
	keywords := make([]string, 0, 4)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		switch word {
		case "and", "both", "also":
			operator = "AND"
		case "or", "either":
			operator = "OR"
		case "not", "without", "exclude":
			operator = "NOT"
		default:
			keywords = append(keywords, word)
		}
	}

	return &ai.StructuredQuery{
		Keywords:   keywords,
		Operator:   operator,
		SearchMode: "fuzzy",
	}, nil
}

// CallCount returns the number of times InterpretQuery was called.
func (m *MockInterpreter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockInterpreter) Reset() {
	m.callCount = 0
	m.InterpretQueryFunc = nil
}
