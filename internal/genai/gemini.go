// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// geminiAPIBase is the Gemini generateContent endpoint prefix. Package-level
// var for test substitution with an httptest server.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiBackend calls the Gemini generateContent REST API. The API key is
// injected at construction; there is no process-wide credential state.
type GeminiBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// NewGeminiBackend builds a backend from config. A nil HTTP client falls
// back to http.DefaultClient at call time.
func NewGeminiBackend(cfg types.AIConfig, client *http.Client) *GeminiBackend {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiBackend{APIKey: cfg.APIKey, Model: model, Client: client}
}

// geminiRequest is the request body for the generateContent API.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// geminiResponse is the response body from the generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Generate sends the prompt to the Gemini API and returns the text of the
// first candidate. All failures are wrapped in *GenerationError so callers
// can distinguish backend trouble from their own.
func (b *GeminiBackend) Generate(ctx context.Context, prompt string, temperature float64) (Result, error) {
	if b.APIKey == "" {
		return Result{}, &GenerationError{Model: b.Model, Err: fmt.Errorf("missing API key")}
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{Temperature: temperature},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, &GenerationError{Model: b.Model, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, b.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return Result{}, &GenerationError{Model: b.Model, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, &GenerationError{Model: b.Model, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, &GenerationError{
			Model: b.Model,
			Err:   fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return Result{}, &GenerationError{Model: b.Model, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if len(gResp.Candidates) == 0 {
		return Result{}, &GenerationError{Model: b.Model, Err: fmt.Errorf("empty candidates")}
	}

	var sb strings.Builder
	for _, part := range gResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return Result{}, &GenerationError{Model: b.Model, Err: fmt.Errorf("empty text in first candidate")}
	}

	return Result{
		Text:       text,
		TokenCount: gResp.UsageMetadata.TotalTokenCount,
		Elapsed:    time.Since(start),
		Model:      b.Model,
	}, nil
}
