package openai

import "errors"

// ErrEmptyResponse is returned when the model produces no choices.
// Callers treat it like any other interpretation failure.
var ErrEmptyResponse = errors.New("model returned no choices")
