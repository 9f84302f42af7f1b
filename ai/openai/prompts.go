package openai

import "fmt"

const interpretationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "array",
      "items": {"type": "string"}
    },
    "operator": {
      "type": "string",
      "enum": ["AND", "OR", "NOT"]
    },
    "search_mode": {
      "type": "string",
      "enum": ["exact", "fuzzy", "semantic"]
    },
    "filters": {
      "type": "object",
      "properties": {
        "tags": {"type": "array", "items": {"type": "string"}},
        "recent": {"type": "boolean"},
        "importance": {"type": "integer", "minimum": 0, "maximum": 10},
        "source_type": {"type": "string"}
      },
      "additionalProperties": false
    },
    "order_by": {
      "type": "string",
      "enum": ["relevance", "date", "access_count", "importance", ""]
    }
  },
  "required": ["keywords", "operator", "search_mode"],
  "additionalProperties": false
}`

const interpretationPromptTemplate = `Interpret the given knowledge-base search query and return its structured form as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Keywords are the content-bearing search terms, lowercase, in the order they appear. Drop connective words.
- Map natural-language connectives to the operator: "and"/"both"/"also" mean AND, "or"/"either" mean OR,
  "not"/"without"/"exclude" mean NOT. Default to OR when no connective is present.
- With NOT, the term to keep comes first in keywords and the terms to exclude follow it.
- Pick search_mode: "exact" when the user quotes a phrase or asks for an exact match, "semantic" when the
  query asks about a topic in broad terms, otherwise "fuzzy".
- Set filters.tags only when the user names tags or categories explicitly. Set filters.recent true only for
  queries about today or the last day. Set filters.source_type only when the user names where the item came
  from ("manual", "note", "ai_analysis"). Omit the filters object when nothing applies.
- Set order_by only when the user asks for an ordering ("newest", "most used", "most important"); otherwise
  use "" so the default personalized ordering applies.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.



Example (plain topic query):
Input: "morning routines"
Output:
{
  "keywords": ["morning routine"],
  "operator": "OR",
  "search_mode": "fuzzy",
  "order_by": ""
}

---  // informal / chat-style examples

Example (exclusion, no punctuation):
Input: "health not work"
Output:
{
  "keywords": ["health", "work"],
  "operator": "NOT",
  "search_mode": "fuzzy",
  "order_by": ""
}

Example (conjunction with ordering request):
Input: "newest notes about python and testing"
Output:
{
  "keywords": ["python", "testing"],
  "operator": "AND",
  "search_mode": "fuzzy",
  "order_by": "date"
}

Example (broad topic, semantic):
Input: "anything related to staying healthy"
Output:
{
  "keywords": ["health"],
  "operator": "OR",
  "search_mode": "semantic",
  "order_by": ""
}

Example (tag filter, recent):
Input: "today's items tagged work"
Output:
{
  "keywords": ["work"],
  "operator": "OR",
  "search_mode": "fuzzy",
  "filters": {"tags": ["work"], "recent": true},
  "order_by": ""
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(interpretationPromptTemplate, interpretationResponseSchema)
}
