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

import (
	"fmt"
	"time"
)

// ValidateKnowledgeItem validates a KnowledgeItem according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Content must not be empty
//   - Importance must be between 0 and 10 (0 means unset)
//   - AccessCount must not be negative
//   - CreatedAt must not be in the future
//
// NOT validated (optional fields):
//   - Summary, KeyPoints, Tags, SourceType, Category (may all be empty)
//   - ID ("" is valid before storage assigns one)
func ValidateKnowledgeItem(item *KnowledgeItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidKnowledgeItem)
	}

	if item.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrEmptyTitle)
	}

	if item.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrEmptyContent)
	}

	if item.Importance < 0 || item.Importance > 10 {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrInvalidImportance)
	}

	if item.AccessCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrNegativeAccessCount)
	}

	if !item.CreatedAt.IsZero() && !IsValidTimestamp(item.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateBehaviorEvent validates a BehaviorEvent according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - ItemId must not be empty
//   - Timestamp must not be in the future
func ValidateBehaviorEvent(event *BehaviorEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidBehaviorEvent)
	}

	if event.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBehaviorEvent, ErrEmptyQuery)
	}

	if event.ItemId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBehaviorEvent, ErrEmptyItemId)
	}

	if !IsValidTimestamp(event.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidBehaviorEvent, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateParsedQuery validates a ParsedQuery according to domain rules.
//
// Validation rules:
//   - Keywords must not be empty
//   - Operator must be AND, OR, or NOT
//   - Mode must be exact, fuzzy, or semantic
//   - OrderBy must be a known ordering or unset
func ValidateParsedQuery(query *ParsedQuery) error {
	if query == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidParsedQuery)
	}

	if len(query.Keywords) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParsedQuery, ErrNoKeywords)
	}

	if err := ValidateOperator(query.Operator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParsedQuery, err)
	}

	if err := ValidateSearchMode(query.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParsedQuery, err)
	}

	if err := ValidateOrderBy(query.OrderBy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParsedQuery, err)
	}

	return nil
}

// ValidateOperator validates that an Operator has a known value.
func ValidateOperator(op Operator) error {
	switch op {
	case OperatorAnd, OperatorOr, OperatorNot:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOperator, op)
}

// ValidateSearchMode validates that a SearchMode has a known value.
func ValidateSearchMode(mode SearchMode) error {
	switch mode {
	case ModeExact, ModeFuzzy, ModeSemantic:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSearchMode, mode)
}

// ValidateOrderBy validates that an OrderBy has a known value.
// The empty value is valid and selects the composite personalized ordering.
func ValidateOrderBy(order OrderBy) error {
	switch order {
	case OrderByRelevance, OrderByDate, OrderByAccessCount, OrderByImportance, OrderByComposite:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOrderBy, order)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
