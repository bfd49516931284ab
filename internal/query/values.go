// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

// Canonical facet values. These are the closed legal sets each facet draws
// from; the sentinel values ("Any age", "All types", ...) compile to no
// filter fragment.

// ClinicalCategories are the PubMed clinical query categories.
var ClinicalCategories = []string{
	"Therapy",
	"Diagnosis",
	"Etiology",
	"Prognosis",
	"Clinical Prediction Guides",
}

// FilterScopes are the clinical filter scope options. Broad favors
// sensitivity, Narrow favors specificity.
var FilterScopes = []string{"Broad", "Narrow"}

// ScopeNarrow is the default scope applied to detected clinical categories.
const ScopeNarrow = "Narrow"

// AgeGroups are the age group menu options.
var AgeGroups = []string{
	"Adults (18+)",
	"Aged (65+)",
	"Children (<18)",
	"Adults and children",
	"Any age",
}

// TimePeriods are the publication time period menu options.
var TimePeriods = []string{
	"Last year",
	"Last 5 years",
	"Last 10 years",
	"Custom range",
	"Any time",
}

// TextAvailabilities are the text availability menu options.
var TextAvailabilities = []string{
	"All results",
	"Full text",
	"Free full text",
	"Abstract",
}

// ArticleTypes are the article type menu options.
var ArticleTypes = []string{
	"Clinical trial",
	"Meta-analysis",
	"Randomized controlled trial",
	"Review",
	"Systematic review",
	"All types",
}

// Genders are the gender filter menu options.
var Genders = []string{"All genders", "Female", "Male"}
