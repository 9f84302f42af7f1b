// Copyright 2025 Quarry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used in Quarry.
//
// The search engine delegates natural-language query understanding to an
// external text-completion service. This package defines the interface for
// that collaborator, following the dependency inversion principle so the
// engine depends on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around one key interface:
//
//   - QueryInterpreter: Turns a free-text query into a structured query
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewQueryInterpreter) return INTERFACE types to
// enforce abstraction and prevent accidental coupling to concrete
// implementations. Test utility constructors (mock.NewMockInterpreter)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields and methods (InterpretQueryFunc, CallCount, Reset).
//
// # Failure Contract
//
// Interpretation is best-effort: an interpreter may fail for transport,
// timeout, or malformed-output reasons, and it reports all of those as plain
// errors. Callers (the search engine) are required to degrade to a
// deterministic fallback interpretation rather than surface these errors.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	interpreter, err := openai.NewQueryInterpreter(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	structured, err := interpreter.InterpretQuery(ctx, "health not work")
package ai
