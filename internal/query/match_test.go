// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"reflect"
	"testing"
)

func TestMatchClinicalCategory(t *testing.T) {
	m, ok := MatchClinicalCategory("therapy")
	if !ok || m.Value != "Therapy" {
		t.Errorf("MatchClinicalCategory(therapy) = %+v, %v", m, ok)
	}
	if want := []string{"treatment", "therapy", "intervention"}; !reflect.DeepEqual(m.RemovalTerms, want) {
		t.Errorf("RemovalTerms = %v, want %v", m.RemovalTerms, want)
	}

	if _, ok := MatchClinicalCategory("surgery"); ok {
		t.Error("surgery should not match any clinical category")
	}
	if _, ok := MatchClinicalCategory(""); ok {
		t.Error("empty value should not match")
	}
}

func TestMatchAgeGroup(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"Adults", "Adults (18+)", true},
		{"adult patients", "Adults (18+)", true},
		{"Elderly", "Aged (65+)", true},
		{"elderly adults", "Aged (65+)", true},
		{"the aged", "Aged (65+)", true},
		{"Children", "Children (<18)", true},
		{"teenagers", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		m, ok := MatchAgeGroup(tt.raw)
		if ok != tt.wantOK || m.Value != tt.want {
			t.Errorf("MatchAgeGroup(%q) = %q, %v; want %q, %v", tt.raw, m.Value, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchTimePeriod(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"Last year", "Last year", true},
		{"the past year", "Last year", true},
		{"last 10 years", "Last 10 years", true},
		{"past 10 years", "Last 10 years", true},
		{"Recent", "Last 5 years", true},
		{"most recent studies", "Last 5 years", true},
		{"last 5 years", "Last 5 years", true},
		{"since 1990", "", false},
	}
	for _, tt := range tests {
		m, ok := MatchTimePeriod(tt.raw)
		if ok != tt.wantOK || m.Value != tt.want {
			t.Errorf("MatchTimePeriod(%q) = %q, %v; want %q, %v", tt.raw, m.Value, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchArticleType(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"Clinical trial", "Clinical trial", true},
		{"meta-analysis", "Meta-analysis", true},
		{"systematic review", "Systematic review", true},
		{"Review", "Review", true},
		{"RCT", "Randomized controlled trial", true},
		{"randomized controlled trial", "Randomized controlled trial", true},
		{"case report", "", false},
	}
	for _, tt := range tests {
		m, ok := MatchArticleType(tt.raw)
		if ok != tt.wantOK || m.Value != tt.want {
			t.Errorf("MatchArticleType(%q) = %q, %v; want %q, %v", tt.raw, m.Value, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchGender(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"Female", "Female", true},
		{"female subjects", "Female", true},
		{"Male", "Male", true},
		{"females and males", "Female", true},
		{"all", "", false},
	}
	for _, tt := range tests {
		m, ok := MatchGender(tt.raw)
		if ok != tt.wantOK || m.Value != tt.want {
			t.Errorf("MatchGender(%q) = %q, %v; want %q, %v", tt.raw, m.Value, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchHumansOnly(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"yes", true},
		{"Yes", true},
		{" YES ", true},
		{"no", false},
		{"null", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := MatchHumansOnly(tt.raw); got != tt.want {
			t.Errorf("MatchHumansOnly(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
