// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query compiles free-text research questions into structured PubMed
// boolean queries. The pipeline simplifies the question to base terms,
// extracts structured facets with confidence levels, gates auto-application
// on confidence, strips terms made redundant by filters, compiles facet
// values to literal filter fragments, and assembles the final query string.
package query

import "sort"

// Facet identifies one structured search dimension, independent of the others.
type Facet string

const (
	FacetClinicalCategory Facet = "clinical_category"
	FacetAgeGroup         Facet = "age_group"
	FacetTimePeriod       Facet = "time_period"
	FacetArticleType      Facet = "article_type"
	FacetGender           Facet = "gender"
	FacetHumansOnly       Facet = "humans_only"
)

// Facets lists all facets in resolution order.
var Facets = []Facet{
	FacetClinicalCategory,
	FacetAgeGroup,
	FacetTimePeriod,
	FacetArticleType,
	FacetGender,
	FacetHumansOnly,
}

// Confidence is the trust level the extractor attaches to a detected value.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ExtractedParameter is one facet value as detected by the AI extractor.
// Value is raw free text ("Adults", "last 5 years") and must be matched
// against the facet's legal values by keyword containment downstream.
type ExtractedParameter struct {
	Facet      Facet
	Value      string
	Confidence Confidence
}

// Source records how a facet value was chosen.
type Source string

const (
	SourceDetected     Source = "detected"
	SourceUserExplicit Source = "user"
	SourceNone         Source = "none"
)

// ResolvedFacet is the final per-facet outcome for one session. Value is the
// canonical choice (empty when the facet contributes nothing).
type ResolvedFacet struct {
	Facet  Facet
	Value  string
	Source Source
}

// RemovalSet tracks the lowercase word stems that resolved facets make
// redundant in the base query. Terms are recorded per facet so that
// rejecting a facet rolls back exactly the terms added on its behalf:
// the set is always the union of terms added by currently-accepted facets.
type RemovalSet struct {
	byFacet map[Facet][]string
}

// NewRemovalSet returns an empty RemovalSet.
func NewRemovalSet() *RemovalSet {
	return &RemovalSet{byFacet: make(map[Facet][]string)}
}

// Add records terms on behalf of a facet, replacing any terms previously
// recorded for that facet.
func (s *RemovalSet) Add(f Facet, terms ...string) {
	s.byFacet[f] = append([]string(nil), terms...)
}

// Drop removes all terms recorded for a facet (facet rejection rollback).
func (s *RemovalSet) Drop(f Facet) {
	delete(s.byFacet, f)
}

// Terms returns the union of all recorded terms, sorted for determinism.
func (s *RemovalSet) Terms() []string {
	seen := make(map[string]bool)
	var out []string
	for _, terms := range s.byFacet {
		for _, t := range terms {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct terms in the set.
func (s *RemovalSet) Len() int {
	return len(s.Terms())
}
