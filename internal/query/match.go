// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "strings"

// Detection matching rules. Extracted values are raw free text; each rule
// maps them onto a canonical facet value by keyword containment plus the
// redundant base-query terms the match makes removable. The keyword lists
// are product policy carried as data, not derived.

// Match holds the outcome of matching a raw extracted value.
type Match struct {
	// Value is the canonical facet value.
	Value string

	// Label is the human-readable name shown when offering the detection.
	Label string

	// RemovalTerms are the base-query word stems the filter now covers.
	RemovalTerms []string
}

type matchRule struct {
	// contains must all appear in the lowercased raw value.
	contains []string
	// excludes must not appear.
	excludes []string
	match    Match
}

// categoryRemovalTerms maps each clinical category to the terms its filter
// makes redundant.
var categoryRemovalTerms = map[string][]string{
	"Therapy":   {"treatment", "therapy", "intervention"},
	"Diagnosis": {"diagnosis", "diagnostic"},
	"Etiology":  {"cause", "etiology", "factor"},
	"Prognosis": {"prognosis", "outcome", "survival"},
}

// MatchClinicalCategory matches a raw value against the clinical category
// list, case-insensitively.
func MatchClinicalCategory(raw string) (Match, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, category := range ClinicalCategories {
		if strings.ToLower(category) == lower {
			return Match{
				Value:        category,
				Label:        category,
				RemovalTerms: categoryRemovalTerms[category],
			}, true
		}
	}
	return Match{}, false
}

var ageRules = []matchRule{
	{
		contains: []string{"adult"},
		excludes: []string{"elder"},
		match: Match{
			Value:        "Adults (18+)",
			Label:        "Adults (18+)",
			RemovalTerms: []string{"adult"},
		},
	},
	{
		contains: []string{"elder"},
		match: Match{
			Value:        "Aged (65+)",
			Label:        "Elderly (65+)",
			RemovalTerms: []string{"elderly", "aged", "elder", "older"},
		},
	},
	{
		contains: []string{"aged"},
		match: Match{
			Value:        "Aged (65+)",
			Label:        "Elderly (65+)",
			RemovalTerms: []string{"elderly", "aged", "elder", "older"},
		},
	},
	{
		contains: []string{"child"},
		match: Match{
			Value:        "Children (<18)",
			Label:        "Children (<18)",
			RemovalTerms: []string{"child", "pediatric"},
		},
	},
}

// MatchAgeGroup matches a raw value against the age group rules.
func MatchAgeGroup(raw string) (Match, bool) {
	return matchRules(raw, ageRules)
}

var timeRules = []matchRule{
	{
		contains: []string{"last year"},
		match: Match{
			Value:        "Last year",
			Label:        "Last year",
			RemovalTerms: []string{"recent", "new", "latest", "last", "year"},
		},
	},
	{
		contains: []string{"past year"},
		match: Match{
			Value:        "Last year",
			Label:        "Last year",
			RemovalTerms: []string{"recent", "new", "latest", "last", "year"},
		},
	},
	{
		contains: []string{"last 10"},
		match: Match{
			Value:        "Last 10 years",
			Label:        "Last 10 years",
			RemovalTerms: []string{"decade", "ten", "years"},
		},
	},
	{
		contains: []string{"past 10"},
		match: Match{
			Value:        "Last 10 years",
			Label:        "Last 10 years",
			RemovalTerms: []string{"decade", "ten", "years"},
		},
	},
	{
		contains: []string{"recent"},
		match: Match{
			Value:        "Last 5 years",
			Label:        "Last 5 years",
			RemovalTerms: []string{"recent", "new", "latest", "last", "years"},
		},
	},
	{
		contains: []string{"last 5"},
		match: Match{
			Value:        "Last 5 years",
			Label:        "Last 5 years",
			RemovalTerms: []string{"recent", "new", "latest", "last", "years"},
		},
	},
}

// MatchTimePeriod matches a raw value against the time period rules. More
// specific phrases ("last year", "last 10") are tried before the generic
// "recent" rule.
func MatchTimePeriod(raw string) (Match, bool) {
	return matchRules(raw, timeRules)
}

var articleRules = []matchRule{
	{
		contains: []string{"clinical trial"},
		match: Match{
			Value:        "Clinical trial",
			Label:        "Clinical trial",
			RemovalTerms: []string{"trial", "clinical"},
		},
	},
	{
		contains: []string{"meta", "analysis"},
		match: Match{
			Value:        "Meta-analysis",
			Label:        "Meta-analysis",
			RemovalTerms: []string{"meta", "analysis", "meta-analysis"},
		},
	},
	{
		contains: []string{"review", "systematic"},
		match: Match{
			Value:        "Systematic review",
			Label:        "Systematic review",
			RemovalTerms: []string{"review", "systematic"},
		},
	},
	{
		contains: []string{"review"},
		match: Match{
			Value:        "Review",
			Label:        "Review",
			RemovalTerms: []string{"review", "overview"},
		},
	},
	{
		contains: []string{"rct"},
		match: Match{
			Value:        "Randomized controlled trial",
			Label:        "Randomized controlled trial",
			RemovalTerms: []string{"rct", "randomized", "controlled"},
		},
	},
	{
		contains: []string{"randomized"},
		match: Match{
			Value:        "Randomized controlled trial",
			Label:        "Randomized controlled trial",
			RemovalTerms: []string{"rct", "randomized", "controlled"},
		},
	},
}

// MatchArticleType matches a raw value against the article type rules.
func MatchArticleType(raw string) (Match, bool) {
	return matchRules(raw, articleRules)
}

var genderRules = []matchRule{
	{
		contains: []string{"female"},
		match:    Match{Value: "Female", Label: "Female subjects"},
	},
	{
		contains: []string{"male"},
		match:    Match{Value: "Male", Label: "Male subjects"},
	},
}

// MatchGender matches a raw value against the gender rules. "female" is
// tried first because it contains "male" as a substring.
func MatchGender(raw string) (Match, bool) {
	return matchRules(raw, genderRules)
}

// MatchHumansOnly reports whether the raw value affirms a human-studies
// restriction.
func MatchHumansOnly(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "yes")
}

func matchRules(raw string, rules []matchRule) (Match, bool) {
	lower := strings.ToLower(raw)
	for _, rule := range rules {
		if !containsAll(lower, rule.contains) {
			continue
		}
		if containsAny(lower, rule.excludes) {
			continue
		}
		return rule.match, true
	}
	return Match{}, false
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
