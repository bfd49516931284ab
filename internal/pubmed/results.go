// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// slugPattern matches runs of characters that are not letters or digits;
// they collapse to single hyphens in result filenames.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SaveRun writes a search run to dir as timestamped JSON and returns the
// file path. Persistence is best-effort; callers may treat failure as a
// warning.
func SaveRun(run types.SearchRun, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	name := fmt.Sprintf("pubmed-%s-%s.json", Slug(run.Query), run.Timestamp.Format("20060102150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling search run: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// LoadRun reads a previously saved search run.
func LoadRun(path string) (types.SearchRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SearchRun{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var run types.SearchRun
	if err := json.Unmarshal(data, &run); err != nil {
		return types.SearchRun{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return run, nil
}

// Slug reduces a query string to a filename-safe fragment.
func Slug(query string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(query), "-")
	s = strings.Trim(s, "-")
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		s = "query"
	}
	return s
}

// FormatTable writes the run as a human-readable table to w.
func FormatTable(run types.SearchRun, w io.Writer) {
	if len(run.Articles) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-60s  %-20s  %s\n", "Rank", "ID", "Title", "Authors", "Date")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, a := range run.Articles {
		title := a.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-10s  %-60s  %-20s  %s\n",
			i+1, a.ID, title, formatAuthors(a.Authors), a.PubDate)
	}

	fmt.Fprintf(w, "\n%d of %d results shown\n", len(run.Articles), run.NumResults)
}

// FormatJSON writes the run as indented JSON to w.
func FormatJSON(run types.SearchRun, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// NewRun builds a SearchRun stamped with the current time.
func NewRun(query, db string, total int, articles []types.Article) types.SearchRun {
	return types.SearchRun{
		Query:      query,
		Database:   db,
		Timestamp:  time.Now(),
		NumResults: total,
		Articles:   articles,
	}
}
