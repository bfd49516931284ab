// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "testing"

func TestRemoveRedundant(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		removal []string
		want    string
	}{
		{
			name:    "no removal terms",
			base:    "(diabetes treatment adults)",
			removal: nil,
			want:    "(diabetes treatment adults)",
		},
		{
			name:    "removes exact and plural",
			base:    "(diabetes treatment adults)",
			removal: []string{"treatment", "adult"},
			want:    "(diabetes)",
		},
		{
			name:    "substring containment",
			base:    "(hypertension meta-analysis outcome)",
			removal: []string{"analysis", "outcome"},
			want:    "(hypertension)",
		},
		{
			name:    "case insensitive",
			base:    "(Metformin Elderly Patients)",
			removal: []string{"elderly"},
			want:    "(Metformin Patients)",
		},
		{
			name:    "unrelated terms untouched",
			base:    "(metformin vitamin B12 deficiency)",
			removal: []string{"elderly", "recent"},
			want:    "(metformin vitamin B12 deficiency)",
		},
		{
			name:    "empty base query",
			base:    "",
			removal: []string{"adult"},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveRedundant(tt.base, tt.removal); got != tt.want {
				t.Errorf("RemoveRedundant(%q, %v) = %q, want %q", tt.base, tt.removal, got, tt.want)
			}
		})
	}
}

func TestRemoveRedundantNeverEmpties(t *testing.T) {
	// Removal covers every token; the long non-generic token survives.
	got := RemoveRedundant("(elderly hypertension treatment)", []string{"elder", "hypertension", "treatment"})
	if got == "()" || got == "" {
		t.Fatalf("dedup emptied the query: %q", got)
	}

	// Removal covers every token and the survivors rule yields nothing
	// (all tokens short or generic); the original list is restored.
	got = RemoveRedundant("(recent years)", []string{"recent", "year"})
	if got != "(recent years)" {
		t.Errorf("RemoveRedundant = %q, want original restored", got)
	}
}

func TestRemoveRedundantFallbackKeepsCoreTopic(t *testing.T) {
	// Every token matches a removal term, but "metformin" is long and not
	// generic, so it is retained as the likely core topic.
	got := RemoveRedundant("(metformin treatment)", []string{"metformin", "treatment"})
	if got != "(metformin)" {
		t.Errorf("RemoveRedundant = %q, want %q", got, "(metformin)")
	}
}
