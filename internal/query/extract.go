// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/pubmed-assistant/internal/genai"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// extractPromptTmpl instructs the model to analyze the question and return a
// single JSON object with one sub-object per facet, each carrying a value
// (string or null) and a confidence level.
var extractPromptTmpl = template.Must(template.New("extract").Parse(`Analyze this medical literature search query and extract key search parameters.
Query: "{{.Question}}"

Identify the following elements and output ONLY a valid JSON object:

1. Clinical category: (Therapy, Diagnosis, Etiology, Prognosis, or null)
2. Age group: (Adults, Children, Elderly, or null)
3. Time period: (Recent, Last year, Last 5 years, Last 10 years, or null)
4. Article types: (Review, Clinical trial, Meta-analysis, etc., or null)
5. Gender focus: (Male, Female, or null)
6. Human studies only: (Yes, No, or null)
7. Confidence: (High, Medium, Low) for each detected parameter

You must output a valid JSON object like this - with no additional text before or after:

{
  "clinical_category": {"value": "Therapy", "confidence": "High"},
  "age_group": {"value": "Adults", "confidence": "High"},
  "time_period": {"value": "Recent", "confidence": "Medium"},
  "article_type": {"value": "Clinical trial", "confidence": "Low"},
  "gender": {"value": null, "confidence": "Low"},
  "humans_only": {"value": "Yes", "confidence": "Medium"}
}

Output ONLY the JSON object with no explanations or additional text.
`))

// codeFencePattern matches a leading or trailing markdown code fence around
// the model's JSON response.
var codeFencePattern = regexp.MustCompile("(?m)^```(?:json)?\\s*$|^```\\s*$")

// rawParameter mirrors the JSON shape the model is asked to produce.
type rawParameter struct {
	Value      *string `json:"value"`
	Confidence string  `json:"confidence"`
}

// Extract infers structured facets from the free-text question. Extraction
// is best-effort: any backend failure or malformed JSON is logged to w and
// produces an empty map so the pipeline falls through to manual elicitation
// for every facet.
func Extract(ctx context.Context, backend genai.Backend, cfg types.AIConfig, question string, w io.Writer) map[Facet]ExtractedParameter {
	prompt, err := renderExtractPrompt(question)
	if err != nil {
		fmt.Fprintf(w, "warning: rendering extraction prompt: %v\n", err)
		return map[Facet]ExtractedParameter{}
	}

	res, err := genai.GenerateWithRetry(ctx, backend, prompt, cfg.Temperature, cfg.MaxRetries)
	if err != nil {
		fmt.Fprintf(w, "warning: parameter extraction failed: %v\n", err)
		return map[Facet]ExtractedParameter{}
	}

	params, err := parseExtraction(res.Text)
	if err != nil {
		fmt.Fprintf(w, "warning: could not parse extraction response: %v\n", err)
		return map[Facet]ExtractedParameter{}
	}
	return params
}

// parseExtraction cleans the raw model response and decodes the facet map.
// Cleanup tolerates prose and markdown fences around the JSON object: fences
// are stripped, then only the substring from the first '{' to the last '}'
// is parsed.
func parseExtraction(response string) (map[Facet]ExtractedParameter, error) {
	text := CleanJSONResponse(response)
	if text == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw map[string]rawParameter
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decoding extraction JSON: %w", err)
	}

	params := make(map[Facet]ExtractedParameter)
	for _, f := range Facets {
		rp, ok := raw[string(f)]
		if !ok || rp.Value == nil {
			continue
		}
		params[f] = ExtractedParameter{
			Facet:      f,
			Value:      *rp.Value,
			Confidence: Confidence(rp.Confidence),
		}
	}
	return params, nil
}

// CleanJSONResponse strips markdown code fences and extraneous prose from a
// model response, returning the substring from the first '{' to the last
// '}'. Returns "" when no such substring exists.
func CleanJSONResponse(response string) string {
	text := codeFencePattern.ReplaceAllString(strings.TrimSpace(response), "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func renderExtractPrompt(question string) (string, error) {
	var buf bytes.Buffer
	err := extractPromptTmpl.Execute(&buf, struct{ Question string }{Question: question})
	return buf.String(), err
}
