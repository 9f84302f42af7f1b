// Package mock provides test double implementations of AI service interfaces.
//
// This package contains a mock implementation of ai.QueryInterpreter for use
// in unit tests. The mock allows tests to run without an external
// text-completion service and enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	interpreter := mock.NewMockInterpreter()
//	structured, err := interpreter.InterpretQuery(ctx, "health not work")
//
//	// Custom behavior injection
//	interpreter.InterpretQueryFunc = func(ctx context.Context, query string) (*ai.StructuredQuery, error) {
//	    return nil, errors.New("service unavailable")
//	}
//
//	// Check call counts
//	count := interpreter.CallCount()
//
// # Default Behavior
//
// The default interpretation splits the query on whitespace, recognizes the
// connectives "and", "or", and "not", and uses fuzzy matching. It is a rough
// stand-in for the production interpreter, good enough to drive the engine in
// tests without asserting on its exact output.
package mock
