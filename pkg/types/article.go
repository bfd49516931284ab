// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Article holds the metadata and abstract for one PubMed/PMC record.
type Article struct {
	// ID is the PubMed ID (PMID) or PMC ID.
	ID string `json:"id" yaml:"id"`

	// Title is the article title as returned by esummary.
	Title string `json:"title" yaml:"title"`

	// Authors lists the article authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Journal is the full journal name.
	Journal string `json:"journal" yaml:"journal"`

	// PubDate is the publication date as reported by the source (free-form).
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// DOI is the digital object identifier, when present.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Abstract is the article abstract, or "Abstract not available".
	Abstract string `json:"abstract" yaml:"abstract"`

	// URL points to the article on pubmed.ncbi.nlm.nih.gov.
	URL string `json:"url" yaml:"url"`
}

// SearchRun is the on-disk representation of one search: the query that was
// issued, when it ran, and the articles it returned. The exporter consumes
// this shape to produce Obsidian notes.
type SearchRun struct {
	Query      string    `json:"query" yaml:"query"`
	Database   string    `json:"database" yaml:"database"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	NumResults int       `json:"num_results" yaml:"num_results"`
	Articles   []Article `json:"articles" yaml:"articles"`
}
