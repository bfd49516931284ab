// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/pubmed-assistant/internal/genai"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// simplifyPromptTmpl instructs the model to reduce a natural language
// question to bare PubMed search terms: no punctuation, no stopwords,
// singular nouns and adjectives, wrapped in parentheses, no filters or tags.
var simplifyPromptTmpl = template.Must(template.New("simplify").Parse(`Convert this natural language medical question into a simple, optimized PubMed search query.

Natural language question: "{{.Question}}"

Guidelines for the optimized query:
- Remove all punctuation
- Remove articles, pronouns, adverbs
- Keep only relevant nouns and adjectives
- Use singular form for terms (unless plural is semantically necessary)
- Don't add any tags or filters yet
- Focus on the most specific search terms
- Return ONLY the simplified terms, enclosed in parentheses

Example:
Input: "What's the relationship between gut microbiome composition and the development of food allergies in children?"
Output: (gut microbiome food allergy children)

Your simplified PubMed query terms:
`))

// nonWordPattern matches everything that is not a letter, digit,
// underscore, or whitespace in any script; the heuristic fallback strips
// these before tokenizing.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Simplify reduces a free-text question to a parenthesized bag of search
// terms via the AI backend. On any backend failure it degrades to a local
// heuristic; it never fails and always returns a usable query string.
func Simplify(ctx context.Context, backend genai.Backend, cfg types.AIConfig, question string, w io.Writer) string {
	prompt, err := renderSimplifyPrompt(question)
	if err != nil {
		fmt.Fprintf(w, "warning: rendering simplify prompt: %v\n", err)
		return heuristicTerms(question)
	}

	res, err := genai.GenerateWithRetry(ctx, backend, prompt, cfg.Temperature, cfg.MaxRetries)
	if err != nil {
		fmt.Fprintf(w, "warning: simplification failed, using heuristic terms: %v\n", err)
		return heuristicTerms(question)
	}

	simplified := Wrap(res.Text)
	if strings.TrimSpace(strings.Trim(simplified, "()")) == "" {
		return heuristicTerms(question)
	}
	return simplified
}

// Wrap ensures the term list is enclosed in exactly one pair of outer
// parentheses. Stray parens are stripped first, so Wrap(Wrap(x)) == Wrap(x).
func Wrap(terms string) string {
	inner := strings.TrimSpace(terms)
	inner = strings.Trim(inner, "()")
	return "(" + strings.TrimSpace(inner) + ")"
}

// heuristicTerms is the local fallback: strip non-word characters, split on
// whitespace, and re-join inside parentheses.
func heuristicTerms(question string) string {
	cleaned := nonWordPattern.ReplaceAllString(question, "")
	return Wrap(strings.Join(strings.Fields(cleaned), " "))
}

func renderSimplifyPrompt(question string) (string, error) {
	var buf bytes.Buffer
	err := simplifyPromptTmpl.Execute(&buf, struct{ Question string }{Question: question})
	return buf.String(), err
}
