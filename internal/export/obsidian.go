// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders saved search runs as Obsidian-flavored Markdown
// notes: YAML frontmatter, a linked table of contents, and one section per
// article with its metadata and abstract in a callout block.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// anchorPattern matches characters dropped when deriving heading anchors.
var anchorPattern = regexp.MustCompile(`[^\w\s-]`)

// anchorSpacePattern collapses whitespace and hyphen runs into one hyphen.
var anchorSpacePattern = regexp.MustCompile(`[\s-]+`)

// wordPattern extracts words from the query for frontmatter tags.
var wordPattern = regexp.MustCompile(`\w+`)

// frontmatter is the YAML block at the top of each note.
type frontmatter struct {
	Title        string   `yaml:"title"`
	Date         string   `yaml:"date"`
	Query        string   `yaml:"query"`
	ResultsCount int      `yaml:"results_count"`
	Tags         []string `yaml:"tags"`
}

// WriteNote renders the run as a Markdown note in cfg.NotesDir and returns
// the file path.
func WriteNote(run types.SearchRun, cfg types.ExportConfig) (string, error) {
	if err := os.MkdirAll(cfg.NotesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating notes directory: %w", err)
	}

	name := fmt.Sprintf("pubmed-%s-%s.md", slug(run.Query), run.Timestamp.Format("20060102150405"))
	path := filepath.Join(cfg.NotesDir, name)

	content, err := Render(run)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing note %s: %w", path, err)
	}
	return path, nil
}

// Render produces the full Markdown document for a search run.
func Render(run types.SearchRun) (string, error) {
	var b strings.Builder

	fm, err := renderFrontmatter(run)
	if err != nil {
		return "", err
	}
	b.WriteString(fm)

	fmt.Fprintf(&b, "# PubMed Search: %s\n\n", run.Query)
	fmt.Fprintf(&b, "> Search performed on %s · %d results found\n\n",
		run.Timestamp.Format("2006-01-02 15:04"), run.NumResults)

	b.WriteString(renderTOC(run.Articles))

	for i, a := range run.Articles {
		b.WriteString(renderArticle(i+1, a))
	}

	return b.String(), nil
}

func renderFrontmatter(run types.SearchRun) (string, error) {
	fm := frontmatter{
		Title:        "PubMed - " + run.Query,
		Date:         run.Timestamp.Format("2006-01-02 15:04"),
		Query:        run.Query,
		ResultsCount: run.NumResults,
		Tags:         []string{"pubmed", "research"},
	}
	// Significant query words become tags.
	for _, word := range wordPattern.FindAllString(strings.ToLower(run.Query), -1) {
		if len(word) > 3 {
			fm.Tags = append(fm.Tags, word)
		}
	}

	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}

func renderTOC(articles []types.Article) string {
	var b strings.Builder
	b.WriteString("## Table of Contents\n\n")
	for i, a := range articles {
		entry := fmt.Sprintf("%d. [[#%s|%s]]", i+1, anchor(a.Title), a.Title)
		if a.Journal != "" {
			entry += fmt.Sprintf(" (%s, %s)", a.Journal, yearOf(a.PubDate))
		}
		b.WriteString(entry + "\n")
	}
	b.WriteString("\n---\n\n")
	return b.String()
}

func renderArticle(rank int, a types.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %d. %s {%s}\n\n", rank, a.Title, anchor(a.Title))

	if len(a.Authors) > 0 {
		b.WriteString("### Authors\n\n")
		b.WriteString(strings.Join(a.Authors, ", ") + "\n\n")
	}

	b.WriteString("### Publication\n\n")
	fmt.Fprintf(&b, "**Journal:** %s  \n", a.Journal)
	fmt.Fprintf(&b, "**Date:** %s  \n", a.PubDate)
	fmt.Fprintf(&b, "**ID:** [%s](%s)  \n", a.ID, a.URL)
	if a.DOI != "" {
		fmt.Fprintf(&b, "**DOI:** [%s](https://doi.org/%s)  \n", a.DOI, a.DOI)
	}
	b.WriteString("\n")

	if a.Abstract != "" {
		b.WriteString("### Abstract\n\n")
		b.WriteString("> [!abstract]\n")
		for _, line := range abstractLines(a.Abstract) {
			b.WriteString("> " + line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	return b.String()
}

// abstractLines splits an abstract for the callout block, bolding the
// section headers of structured abstracts (BACKGROUND:, METHODS:, ...).
func abstractLines(abstract string) []string {
	if abstract == "" || abstract == "Abstract not available" {
		return []string{"*No abstract available for this article.*"}
	}

	headers := []string{
		"BACKGROUND:", "INTRODUCTION:", "OBJECTIVE:", "OBJECTIVES:",
		"PURPOSE:", "AIM:", "AIMS:", "METHODS:", "METHODOLOGY:",
		"DESIGN:", "RESULTS:", "FINDINGS:", "CONCLUSION:", "CONCLUSIONS:",
		"DISCUSSION:", "SIGNIFICANCE:", "IMPLICATIONS:", "SUMMARY:",
	}

	structured := false
	for _, h := range headers {
		if strings.Contains(abstract, h) {
			structured = true
			break
		}
	}
	if !structured {
		return []string{abstract}
	}

	text := abstract
	for _, h := range headers {
		text = strings.ReplaceAll(text, h, "\n**"+strings.TrimSuffix(h, ":")+":**")
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// anchor derives an Obsidian heading anchor from a title.
func anchor(title string) string {
	a := anchorPattern.ReplaceAllString(strings.ToLower(title), "")
	return strings.Trim(anchorSpacePattern.ReplaceAllString(a, "-"), "-")
}

// slug derives a filename fragment from the query.
func slug(query string) string {
	return anchor(query)
}

// yearOf returns the year from an E-utilities pubdate, which is year-first
// free text ("2023 Mar 15").
func yearOf(pubDate string) string {
	fields := strings.Fields(pubDate)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
