// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-assistant
// pipeline: configuration, article metadata, and saved search runs.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for stages that call the Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature controls sampling randomness. Query construction uses a
	// low value (0.1) for repeatable simplification and extraction.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PubMedConfig holds settings for the E-utilities search stage.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI API key. With a key E-utilities allows
	// 10 requests/second; without, 3.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// UsePMC searches the PMC full-text database instead of PubMed.
	UsePMC bool `json:"use_pmc" yaml:"use_pmc"`

	// MaxResults is the maximum number of results per search (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// ResultsDir is the directory where search runs are saved as JSON.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`
}

// ExportConfig holds settings for the Obsidian note exporter.
type ExportConfig struct {
	// NotesDir is the directory where Markdown notes are written.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`
}

// HistoryConfig holds settings for the session history store.
type HistoryConfig struct {
	// HistoryDir is the directory containing the SQLite database.
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of listed sessions (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
