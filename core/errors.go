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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidKnowledgeItem indicates a KnowledgeItem failed validation.
	ErrInvalidKnowledgeItem = errors.New("invalid knowledge item")

	// ErrInvalidBehaviorEvent indicates a BehaviorEvent failed validation.
	ErrInvalidBehaviorEvent = errors.New("invalid behavior event")

	// ErrInvalidParsedQuery indicates a ParsedQuery failed validation.
	ErrInvalidParsedQuery = errors.New("invalid parsed query")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptyItemId indicates the ItemId field is empty.
	ErrEmptyItemId = errors.New("item id cannot be empty")

	// ErrInvalidImportance indicates an importance value outside 0-10.
	ErrInvalidImportance = errors.New("importance must be between 0 and 10")

	// ErrNegativeAccessCount indicates a negative access count.
	ErrNegativeAccessCount = errors.New("access count cannot be negative")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrNoKeywords indicates a ParsedQuery with an empty keyword list.
	ErrNoKeywords = errors.New("keywords cannot be empty")

	// ErrInvalidOperator indicates an unknown boolean operator.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidSearchMode indicates an unknown search mode.
	ErrInvalidSearchMode = errors.New("invalid search mode")

	// ErrInvalidOrderBy indicates an unknown ordering.
	ErrInvalidOrderBy = errors.New("invalid order by")
)
