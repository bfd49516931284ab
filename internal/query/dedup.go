// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "strings"

// genericStoplist lists generic research words excluded by the fallback
// retention rule: when removal would strip every token, tokens longer than
// four characters survive unless they appear here.
var genericStoplist = map[string]bool{
	"adult":     true,
	"child":     true,
	"recent":    true,
	"study":     true,
	"paper":     true,
	"review":    true,
	"treatment": true,
	"therapy":   true,
	"diagnosis": true,
	"year":      true,
	"years":     true,
}

// RemoveRedundant strips tokens from the parenthesized base query that are
// covered by a resolved filter. Each removal term matches its bare, +s and
// +es variants, by equality or substring containment, case-insensitively.
//
// The result is never empty: if removal would eliminate every token, tokens
// longer than four characters outside the generic stoplist are retained;
// if that still yields nothing, the original token list is restored.
func RemoveRedundant(baseQuery string, removalTerms []string) string {
	if len(removalTerms) == 0 || baseQuery == "" {
		return baseQuery
	}

	tokens := strings.Fields(strings.Trim(baseQuery, "()"))
	if len(tokens) == 0 {
		return baseQuery
	}

	keep := make([]bool, len(tokens))
	for i := range keep {
		keep[i] = true
	}

	for _, term := range removalTerms {
		lower := strings.ToLower(term)
		variants := []string{lower, lower + "s", lower + "es"}
		for i, tok := range tokens {
			norm := strings.ToLower(tok)
			for _, v := range variants {
				if norm == v || strings.Contains(norm, v) {
					keep[i] = false
					break
				}
			}
		}
	}

	var cleaned []string
	for i, tok := range tokens {
		if keep[i] {
			cleaned = append(cleaned, tok)
		}
	}

	// Removal ate everything: retain the likely core-topic tokens.
	if len(cleaned) == 0 {
		for _, tok := range tokens {
			if len(tok) > 4 && !genericStoplist[strings.ToLower(tok)] {
				cleaned = append(cleaned, tok)
			}
		}
	}

	// Still nothing: revert to the unfiltered token list.
	if len(cleaned) == 0 {
		cleaned = tokens
	}

	return Wrap(strings.Join(cleaned, " "))
}
