package ai

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// LLMProvider defines the contract for interacting with AI models.
// Implementations perform exactly one synchronous completion per call; no streaming, no retries.
type LLMProvider interface {
	// Complete sends prompt to the model and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the model identifier used for completions.
	Model() string
}
