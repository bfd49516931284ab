// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "strings"

// FinalQuery holds every fragment slot in assembly order. Empty strings mean
// the facet contributed nothing and are omitted, never joined as blanks.
type FinalQuery struct {
	BaseTerms        string
	CategoryFragment string
	AgeFragment      string
	TimeFragment     string
	TextFragment     string
	ArticleFragment  string
	SubjectFragments []string
}

// Assemble concatenates the base terms and filter fragments into the final
// query string. The ordering is fixed (base terms, clinical category, age,
// time, text availability, article type, subjects) to keep output stable;
// PubMed itself is tolerant of filter placement.
func Assemble(q FinalQuery) string {
	parts := []string{q.BaseTerms}

	for _, frag := range []string{
		q.CategoryFragment,
		q.AgeFragment,
		q.TimeFragment,
		q.TextFragment,
		q.ArticleFragment,
	} {
		if frag != "" {
			parts = append(parts, frag)
		}
	}

	for _, frag := range q.SubjectFragments {
		if frag != "" {
			parts = append(parts, frag)
		}
	}

	return strings.Join(parts, " ")
}
