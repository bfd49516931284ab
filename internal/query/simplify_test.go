// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/pubmed-assistant/internal/genai"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// --- mock backend ---

// mockBackend routes prompts to canned responses by keyword. Simplification
// and extraction prompts are distinguished by their instruction text.
type mockBackend struct {
	simplifyText string
	extractText  string
	err          error
	calls        int
	prompts      []string
}

func (m *mockBackend) Generate(_ context.Context, prompt string, _ float64) (genai.Result, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return genai.Result{}, m.err
	}
	if strings.Contains(prompt, "extract key search parameters") {
		return genai.Result{Text: m.extractText, Model: "test-model"}, nil
	}
	return genai.Result{Text: m.simplifyText, Model: "test-model"}, nil
}

func testAIConfig() types.AIConfig {
	return types.AIConfig{Model: "test-model", Temperature: 0.1, MaxRetries: 1}
}

// cancelledContext returns an already-cancelled context so failing backends
// exhaust the retry loop without sleeping.
func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// --- Simplify ---

func TestSimplifyUsesBackendResponse(t *testing.T) {
	backend := &mockBackend{simplifyText: "(gut microbiome food allergy children)"}
	var buf strings.Builder

	got := Simplify(context.Background(), backend, testAIConfig(), "How does the gut microbiome relate to food allergies in children?", &buf)
	if got != "(gut microbiome food allergy children)" {
		t.Errorf("Simplify = %q", got)
	}
	if backend.calls != 1 {
		t.Errorf("calls = %d, want 1", backend.calls)
	}
	if !strings.Contains(backend.prompts[0], "How does the gut microbiome relate to food allergies in children?") {
		t.Error("prompt should embed the question")
	}
}

func TestSimplifyWrapsBareTerms(t *testing.T) {
	backend := &mockBackend{simplifyText: "diabetes treatment outcome\n"}

	got := Simplify(context.Background(), backend, testAIConfig(), "q", &strings.Builder{})
	if got != "(diabetes treatment outcome)" {
		t.Errorf("Simplify = %q", got)
	}
}

func TestSimplifyFallsBackOnBackendError(t *testing.T) {
	backend := &mockBackend{err: fmt.Errorf("api down")}
	var buf strings.Builder

	got := Simplify(cancelledContext(), backend, testAIConfig(), "What's the best treatment for migraines?", &buf)
	if got != "(Whats the best treatment for migraines)" {
		t.Errorf("Simplify fallback = %q", got)
	}
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("expected warning in output, got %q", buf.String())
	}
}

func TestSimplifyFallbackKeepsUnicodeTerms(t *testing.T) {
	backend := &mockBackend{err: fmt.Errorf("api down")}

	got := Simplify(cancelledContext(), backend, testAIConfig(), "糖尿病の治療?", &strings.Builder{})
	if got != "(糖尿病の治療)" {
		t.Errorf("Simplify fallback = %q, want %q", got, "(糖尿病の治療)")
	}

	got = Simplify(cancelledContext(), backend, testAIConfig(), "β-blockers efficacy", &strings.Builder{})
	if got != "(βblockers efficacy)" {
		t.Errorf("Simplify fallback = %q, want %q", got, "(βblockers efficacy)")
	}
}

func TestSimplifyFallsBackOnEmptyResponse(t *testing.T) {
	backend := &mockBackend{simplifyText: "()"}

	got := Simplify(context.Background(), backend, testAIConfig(), "statin muscle pain", &strings.Builder{})
	if got != "(statin muscle pain)" {
		t.Errorf("Simplify fallback = %q", got)
	}
}

// --- Wrap ---

func TestWrap(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b c", "(a b c)"},
		{"(a b c)", "(a b c)"},
		{"  ( a b c )  ", "(a b c)"},
		{"((a b c))", "(a b c)"},
		{"", "()"},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); got != tt.want {
			t.Errorf("Wrap(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	inputs := []string{"a b", "(a b)", "  (a b)  ", "gut microbiome", ""}
	for _, in := range inputs {
		once := Wrap(in)
		twice := Wrap(once)
		if once != twice {
			t.Errorf("Wrap not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

// --- heuristicTerms ---

func TestHeuristicTerms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What's the link between X and Y?", "(Whats the link between X and Y)"},
		{"metformin,  vitamin B12!", "(metformin vitamin B12)"},
		{"糖尿病の治療?", "(糖尿病の治療)"},
		{"β-blockers and café-au-lait spots", "(βblockers and caféaulait spots)"},
		{"", "()"},
	}
	for _, tt := range tests {
		if got := heuristicTerms(tt.in); got != tt.want {
			t.Errorf("heuristicTerms(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
