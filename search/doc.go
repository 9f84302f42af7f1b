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


// Package search implements the knowledge-base retrieval engine.
//
// The Engine type runs a four-stage pipeline over an in-memory snapshot of
// the item collection:
//
//   - Parse: a free-text query becomes a structured query via an external
//     text-completion service, with a deterministic fallback when the
//     service is unavailable or returns invalid output
//   - Filter: structured filters plus boolean keyword matching (exact,
//     fuzzy, or synonym-aware semantic) select the candidate set
//   - Score: candidates get an additive relevance score from title, summary,
//     content, and tag matches
//   - Rank: results are ordered by an explicit requested ordering or by a
//     composite score blending relevance with usage history and the user's
//     favorite tags
//
// Filtering, scoring, and ranking are pure functions over the input
// snapshot; the parse stage is the pipeline's only point of suspension and
// is bounded by a timeout. A search never fails: every recoverable error
// degrades to a less precise interpretation or an unpersonalized ranking.
package search
