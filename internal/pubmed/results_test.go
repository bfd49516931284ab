// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

func sampleRun() types.SearchRun {
	return types.SearchRun{
		Query:      "(metformin b12)",
		Database:   "pubmed",
		Timestamp:  time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC),
		NumResults: 2,
		Articles: []types.Article{
			{
				ID:       "41000001",
				Title:    "Metformin and vitamin B12 deficiency in older adults",
				Authors:  []string{"Smith J", "Jones K"},
				Journal:  "Journal of Internal Medicine",
				PubDate:  "2024 Mar 15",
				Abstract: "Abstract text.",
				URL:      "https://pubmed.ncbi.nlm.nih.gov/41000001/",
			},
			{
				ID:      "41000002",
				Title:   "Second article",
				PubDate: "2023",
			},
		},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	dir := t.TempDir()
	run := sampleRun()

	path, err := SaveRun(run, filepath.Join(dir, "results"))
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if filepath.Base(path) != "pubmed-metformin-b12-20260831123000.json" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	loaded, err := LoadRun(path)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if loaded.Query != run.Query || loaded.NumResults != run.NumResults {
		t.Errorf("loaded run = %+v", loaded)
	}
	if len(loaded.Articles) != 2 || loaded.Articles[0].ID != "41000001" {
		t.Errorf("loaded articles = %+v", loaded.Articles)
	}
}

func TestLoadRunMissingFile(t *testing.T) {
	if _, err := LoadRun(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(metformin b12)", "metformin-b12"},
		{"Gut Microbiome & Allergy!", "gut-microbiome-allergy"},
		{"", "query"},
		{"---", "query"},
		{strings.Repeat("a", 80), strings.Repeat("a", 60)},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	var buf strings.Builder
	FormatTable(sampleRun(), &buf)
	out := buf.String()

	if !strings.Contains(out, "41000001") {
		t.Errorf("missing ID in table:\n%s", out)
	}
	if !strings.Contains(out, "Smith J et al.") {
		t.Errorf("missing author formatting in table:\n%s", out)
	}
	if !strings.Contains(out, "2 of 2 results shown") {
		t.Errorf("missing result count in table:\n%s", out)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf strings.Builder
	FormatTable(types.SearchRun{}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"Smith J"}, "Smith J"},
		{[]string{"Smith J", "Jones K"}, "Smith J et al."},
		{[]string{"A very long author name indeed"}, "A very long autho..."},
	}
	for _, tt := range tests {
		if got := formatAuthors(tt.in); got != tt.want {
			t.Errorf("formatAuthors(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
