// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "fmt"

// Filter fragments are literal PubMed boolean-query snippets. Each compile
// function maps a canonical facet value to its fragment; sentinel choices
// ("Any age", "All types", ...) and unknown values yield ("", false), which
// the assembler treats as absence, never as an empty fragment.

// ageFilters maps canonical age groups to their PubMed filter fragments.
var ageFilters = map[string]string{
	"Adults (18+)":        "AND (alladult[Filter])",
	"Aged (65+)":          `AND "adult"[MeSH Terms] AND (aged[Filter])`,
	"Children (<18)":      "AND (allchild[Filter])",
	"Adults and children": "AND (alladult[Filter] OR allchild[Filter])",
}

// timeFilters maps canonical fixed time periods to their fragments. The
// "Custom range" period is compiled separately because it carries years.
var timeFilters = map[string]string{
	"Last year":     "AND (y_1[Filter])",
	"Last 5 years":  "AND (y_5[Filter])",
	"Last 10 years": "AND (y_10[Filter])",
}

// textFilters maps text availability options to their fragments.
var textFilters = map[string]string{
	"Full text":      "AND (fft[Filter])",
	"Free full text": "AND (ffrft[Filter])",
	"Abstract":       "AND (hasabstract[Filter])",
}

// articleFilters maps article types to their fragments.
var articleFilters = map[string]string{
	"Clinical trial":              "AND (clinicaltrial[Filter])",
	"Meta-analysis":               "AND (meta-analysis[Filter])",
	"Randomized controlled trial": "AND (randomizedcontrolledtrial[Filter])",
	"Review":                      "AND (review[Filter])",
	"Systematic review":           "AND (systematicreview[Filter])",
}

// genderFilters maps gender options to their fragments.
var genderFilters = map[string]string{
	"Female": "AND (female[Filter])",
	"Male":   "AND (male[Filter])",
}

// HumansFilter is the subject fragment restricting results to human studies.
const HumansFilter = "AND (humans[Filter])"

// CompileCategory returns the clinical category fragment. Both category and
// scope must be present; otherwise the facet contributes nothing.
func CompileCategory(category, scope string) (string, bool) {
	if category == "" || scope == "" {
		return "", false
	}
	return fmt.Sprintf("AND (%s/%s[Filter])", category, scope), true
}

// CompileAge returns the age group fragment.
func CompileAge(ageGroup string) (string, bool) {
	f, ok := ageFilters[ageGroup]
	return f, ok
}

// CompileTime returns the time period fragment for fixed periods.
func CompileTime(period string) (string, bool) {
	f, ok := timeFilters[period]
	return f, ok
}

// CompileTimeRange returns the custom publication date range fragment for
// user-supplied start and end years.
func CompileTimeRange(startYear, endYear string) string {
	return fmt.Sprintf("AND (%s:%s[pdat])", startYear, endYear)
}

// CompileText returns the text availability fragment.
func CompileText(option string) (string, bool) {
	f, ok := textFilters[option]
	return f, ok
}

// CompileArticle returns the article type fragment.
func CompileArticle(articleType string) (string, bool) {
	f, ok := articleFilters[articleType]
	return f, ok
}

// CompileGender returns the gender subject fragment.
func CompileGender(gender string) (string, bool) {
	f, ok := genderFilters[gender]
	return f, ok
}
