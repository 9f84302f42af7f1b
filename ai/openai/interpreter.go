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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/quarry-app/quarry/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryInterpreter implements ai.QueryInterpreter using OpenAI-compatible chat APIs.
type QueryInterpreter struct {
	client      llms.Model
	maxAttempts int
	logger      *slog.Logger
}

// structuredQueryJSON matches the JSON structure expected from the LLM.
type structuredQueryJSON struct {
	Keywords   []string `json:"keywords"`
	Operator   string   `json:"operator"`
	SearchMode string   `json:"search_mode"`
	Filters    struct {
		Tags       []string `json:"tags"`
		Recent     bool     `json:"recent"`
		Importance int      `json:"importance"`
		SourceType string   `json:"source_type"`
	} `json:"filters"`
	OrderBy string `json:"order_by"`
}

// newQueryInterpreter is an internal constructor that returns the concrete type.
func newQueryInterpreter(config *ai.Config) (*QueryInterpreter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/interpretation
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &QueryInterpreter{
		client:      client,
		maxAttempts: config.MaxAttempts,
		logger:      slog.Default().With("component", "openai-interpreter"),
	}, nil
}

// NewQueryInterpreter creates a new query interpreter using the provided configuration.
//
// Returns ai.QueryInterpreter interface to enforce abstraction.
func NewQueryInterpreter(config *ai.Config) (ai.QueryInterpreter, error) {
	return newQueryInterpreter(config)
}

// InterpretQuery extracts the structured form of a search query using an LLM.
// Malformed JSON responses are retried up to the configured attempt budget.
func (q *QueryInterpreter) InterpretQuery(ctx context.Context, query string) (*ai.StructuredQuery, error) {
	// Scrub input text
	query = scrubString(query)

	// Build the system and user prompts
	systemPrompt := buildSystemPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	// Retry in case of malformed JSON
	var result structuredQueryJSON
	var lastErr error
	for attempt := 0; attempt < q.maxAttempts; attempt++ {
		response, err := q.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			q.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			q.logger.Debug("no choices returned from model")
			return nil, ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			q.logger.Warn("error parsing interpreter response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		q.logger.Error("failed to parse interpreter response after retries", "err", lastErr)
		return nil, lastErr
	}

	structured := &ai.StructuredQuery{
		Keywords:   result.Keywords,
		Operator:   strings.ToUpper(strings.TrimSpace(result.Operator)),
		SearchMode: strings.ToLower(strings.TrimSpace(result.SearchMode)),
		Filters: ai.StructuredFilters{
			Tags:       result.Filters.Tags,
			Recent:     result.Filters.Recent,
			Importance: result.Filters.Importance,
			SourceType: result.Filters.SourceType,
		},
		OrderBy: strings.ToLower(strings.TrimSpace(result.OrderBy)),
	}

	q.logger.Debug("interpreted query",
		"keywords", len(structured.Keywords),
		"operator", structured.Operator,
		"mode", structured.SearchMode)

	return structured, nil
}
