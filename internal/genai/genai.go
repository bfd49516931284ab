// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai wraps the Generative AI text API used for query
// simplification and parameter extraction. The Backend interface keeps the
// model a black box: prompt in, text out, with token and latency metrics.
package genai

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Result holds the generated text and per-call metrics.
type Result struct {
	// Text is the raw model output.
	Text string

	// TokenCount is the total token usage reported by the API (0 if unknown).
	TokenCount int

	// Elapsed is the wall-clock duration of the API call.
	Elapsed time.Duration

	// Model is the model that produced the response.
	Model string
}

// Backend generates text from a prompt. The production implementation calls
// the Gemini API; tests supply a mock.
type Backend interface {
	Generate(ctx context.Context, prompt string, temperature float64) (Result, error)
}

// GenerationError reports a failed generation call. Callers in the query
// pipeline catch it and fall back to local heuristics rather than aborting.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating with %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// backoffBase controls the base duration for exponential backoff between
// generation attempts. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// GenerateWithRetry calls the backend with exponential backoff on failure.
// When maxRetries is 0 or negative, 3 attempts are made after the first.
func GenerateWithRetry(ctx context.Context, backend Backend, prompt string, temperature float64, maxRetries int) (Result, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		res, err := backend.Generate(ctx, prompt, temperature)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return Result{}, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
