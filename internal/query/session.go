// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-assistant/internal/genai"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// State names the pipeline stages of one query session.
type State string

const (
	StateAwaitingQuestion State = "awaiting_question"
	StateSimplifying      State = "simplifying"
	StateExtracting       State = "extracting"
	StateResolving        State = "resolving"
	StateDeduplicating    State = "deduplicating"
	StateCompiling        State = "compiling"
	StateAssembling       State = "assembling"
	StateDone             State = "done"
)

// Options tunes session behavior.
type Options struct {
	// DisableDetection skips AI parameter extraction entirely, forcing
	// manual elicitation for every facet (legacy mode).
	DisableDetection bool
}

// Session runs one question through the query-construction pipeline and
// yields exactly one final query. Sessions are single-use: a second Run on
// the same session is an error. All resolution state (removal terms,
// per-facet choices) is local to the session.
type Session struct {
	backend  genai.Backend
	ai       types.AIConfig
	prompter Prompter
	w        io.Writer
	opts     Options

	state     State
	question  string
	baseTerms string
	detected  map[Facet]ExtractedParameter
	removal   *RemovalSet
	resolved  map[Facet]ResolvedFacet

	category string
	scope    string
	age      string
	period   string
	yearFrom string
	yearTo   string
	text     string
	article  string
	humans   bool
	gender   string

	finalQuery string
}

// NewSession builds a session over the given AI backend and prompter.
// Progress and warnings are written to w.
func NewSession(backend genai.Backend, ai types.AIConfig, prompter Prompter, w io.Writer, opts Options) *Session {
	return &Session{
		backend:  backend,
		ai:       ai,
		prompter: prompter,
		w:        w,
		opts:     opts,
		state:    StateAwaitingQuestion,
		detected: map[Facet]ExtractedParameter{},
		removal:  NewRemovalSet(),
		resolved: map[Facet]ResolvedFacet{},
	}
}

// State returns the session's current pipeline stage.
func (s *Session) State() State { return s.state }

// Question returns the research question the session was run with.
func (s *Session) Question() string { return s.question }

// FinalQuery returns the assembled query, or "" before the session is Done.
func (s *Session) FinalQuery() string {
	if s.state != StateDone {
		return ""
	}
	return s.finalQuery
}

// Resolved returns a copy of the per-facet outcomes.
func (s *Session) Resolved() map[Facet]ResolvedFacet {
	out := make(map[Facet]ResolvedFacet, len(s.resolved))
	for f, r := range s.resolved {
		out[f] = r
	}
	return out
}

// Run executes the pipeline for one question and returns the final query.
// Simplification and extraction failures degrade to fallbacks and never
// abort; the only hard failures are an empty question, a consumed session,
// and a prompter error (user interrupt), which discards all progress.
func (s *Session) Run(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("research question is empty")
	}
	if s.state != StateAwaitingQuestion {
		return "", fmt.Errorf("session already ran: each session yields one query")
	}
	s.question = question

	s.state = StateSimplifying
	s.baseTerms = Simplify(ctx, s.backend, s.ai, question, s.w)
	fmt.Fprintf(s.w, "Base query terms: %s\n", s.baseTerms)

	s.state = StateExtracting
	if !s.opts.DisableDetection {
		s.detected = Extract(ctx, s.backend, s.ai, question, s.w)
	}

	s.state = StateResolving
	if err := s.resolveCategory(); err != nil {
		return "", err
	}
	if err := s.resolveAge(); err != nil {
		return "", err
	}
	if err := s.resolveTime(); err != nil {
		return "", err
	}
	if err := s.resolveArticle(); err != nil {
		return "", err
	}
	if err := s.resolveText(); err != nil {
		return "", err
	}
	if err := s.resolveSubjects(); err != nil {
		return "", err
	}

	s.state = StateDeduplicating
	cleaned := RemoveRedundant(s.baseTerms, s.removal.Terms())
	if cleaned != s.baseTerms {
		fmt.Fprintf(s.w, "Refined query terms: %s (removed terms handled by filters)\n", cleaned)
	}

	s.state = StateCompiling
	final := FinalQuery{BaseTerms: cleaned}
	if frag, ok := CompileCategory(s.category, s.scope); ok {
		final.CategoryFragment = frag
	}
	if frag, ok := CompileAge(s.age); ok {
		final.AgeFragment = frag
	}
	if s.period == "Custom range" {
		final.TimeFragment = CompileTimeRange(s.yearFrom, s.yearTo)
	} else if frag, ok := CompileTime(s.period); ok {
		final.TimeFragment = frag
	}
	if frag, ok := CompileText(s.text); ok {
		final.TextFragment = frag
	}
	if frag, ok := CompileArticle(s.article); ok {
		final.ArticleFragment = frag
	}
	if s.humans {
		final.SubjectFragments = append(final.SubjectFragments, HumansFilter)
	}
	if frag, ok := CompileGender(s.gender); ok {
		final.SubjectFragments = append(final.SubjectFragments, frag)
	}

	s.state = StateAssembling
	s.finalQuery = Assemble(final)

	s.state = StateDone
	return s.finalQuery, nil
}

// resolve records the per-facet outcome. A repeat resolution is allowed
// (last write wins) but never silent.
func (s *Session) resolve(f Facet, value string, source Source) {
	if prev, ok := s.resolved[f]; ok && prev.Value != value {
		fmt.Fprintf(s.w, "note: %s re-resolved from %q to %q\n", f, prev.Value, value)
	}
	s.resolved[f] = ResolvedFacet{Facet: f, Value: value, Source: source}
}

// offerDetected runs the AutoOffered step of the per-facet sub-machine:
// announce the detection, confirm (default accept), and on rejection roll
// back the facet's removal terms. Returns whether the detection was kept.
func (s *Session) offerDetected(f Facet, m Match, confirmPrompt string) (bool, error) {
	s.removal.Add(f, m.RemovalTerms...)
	ok, err := s.prompter.Confirm(confirmPrompt, true)
	if err != nil {
		return false, err
	}
	if !ok {
		s.removal.Drop(f)
		return false, nil
	}
	return true, nil
}

func (s *Session) resolveCategory() error {
	if p, ok := s.detected[FacetClinicalCategory]; ok && ShouldAutoApply(p) {
		if m, matched := MatchClinicalCategory(p.Value); matched {
			fmt.Fprintf(s.w, "Detected clinical category: %s (%s scope)\n", m.Label, ScopeNarrow)
			kept, err := s.offerDetected(FacetClinicalCategory, m, "Use this clinical category?")
			if err != nil {
				return err
			}
			if kept {
				s.category = m.Value
				s.scope = ScopeNarrow
				s.resolve(FacetClinicalCategory, m.Value, SourceDetected)
				return nil
			}
		}
	}

	isClinical, err := s.prompter.Confirm("Is your query related to clinical practice (therapy, diagnosis, prognosis, etc.)?", false)
	if err != nil {
		return err
	}
	if !isClinical {
		s.resolve(FacetClinicalCategory, "", SourceNone)
		return nil
	}

	idx, err := s.prompter.Select("Select the clinical category that best matches your query:", ClinicalCategories, 0)
	if err != nil {
		return err
	}
	category := ClinicalCategories[idx]

	scopeIdx, err := s.prompter.Select("Which filter scope would you prefer? (Broad: more results; Narrow: more focused)", FilterScopes, 1)
	if err != nil {
		return err
	}

	s.category = category
	s.scope = FilterScopes[scopeIdx]
	if terms := categoryRemovalTerms[category]; len(terms) > 0 {
		s.removal.Add(FacetClinicalCategory, terms...)
	}
	s.resolve(FacetClinicalCategory, category, SourceUserExplicit)
	return nil
}

func (s *Session) resolveAge() error {
	if p, ok := s.detected[FacetAgeGroup]; ok && ShouldAutoApply(p) {
		if m, matched := MatchAgeGroup(p.Value); matched {
			fmt.Fprintf(s.w, "Detected age group: %s\n", m.Label)
			kept, err := s.offerDetected(FacetAgeGroup, m, "Use this age filter?")
			if err != nil {
				return err
			}
			if kept {
				s.age = m.Value
				s.resolve(FacetAgeGroup, m.Value, SourceDetected)
				return nil
			}
		}
	}

	idx, err := s.prompter.Select("Select the relevant age group for your search:", AgeGroups, len(AgeGroups)-1)
	if err != nil {
		return err
	}
	choice := AgeGroups[idx]
	if choice == "Any age" {
		s.resolve(FacetAgeGroup, "", SourceNone)
		return nil
	}
	s.age = choice
	s.resolve(FacetAgeGroup, choice, SourceUserExplicit)
	return nil
}

func (s *Session) resolveTime() error {
	if p, ok := s.detected[FacetTimePeriod]; ok && ShouldAutoApply(p) {
		if m, matched := MatchTimePeriod(p.Value); matched {
			fmt.Fprintf(s.w, "Detected time period: %s\n", m.Label)
			kept, err := s.offerDetected(FacetTimePeriod, m, "Use this time period?")
			if err != nil {
				return err
			}
			if kept {
				s.period = m.Value
				s.resolve(FacetTimePeriod, m.Value, SourceDetected)
				return nil
			}
		}
	}

	idx, err := s.prompter.Select("Select the publication time period:", TimePeriods, len(TimePeriods)-1)
	if err != nil {
		return err
	}
	choice := TimePeriods[idx]
	switch choice {
	case "Any time":
		s.resolve(FacetTimePeriod, "", SourceNone)
		return nil
	case "Custom range":
		from, err := s.askYear("Enter start year", "2000")
		if err != nil {
			return err
		}
		to, err := s.askYear("Enter end year", "2025")
		if err != nil {
			return err
		}
		s.period = choice
		s.yearFrom = from
		s.yearTo = to
	default:
		s.period = choice
	}
	s.resolve(FacetTimePeriod, choice, SourceUserExplicit)
	return nil
}

// askYear prompts until the answer parses as a year.
func (s *Session) askYear(prompt, def string) (string, error) {
	for {
		answer, err := s.prompter.Input(prompt, def)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1000 && n <= 9999 {
			return answer, nil
		}
		fmt.Fprintf(s.w, "Please enter a four-digit year.\n")
	}
}

func (s *Session) resolveArticle() error {
	if p, ok := s.detected[FacetArticleType]; ok && ShouldAutoApply(p) {
		if m, matched := MatchArticleType(p.Value); matched {
			fmt.Fprintf(s.w, "Detected article type: %s\n", m.Label)
			kept, err := s.offerDetected(FacetArticleType, m, "Use this article type?")
			if err != nil {
				return err
			}
			if kept {
				s.article = m.Value
				s.resolve(FacetArticleType, m.Value, SourceDetected)
				return nil
			}
		}
	}

	idx, err := s.prompter.Select("Select article type:", ArticleTypes, len(ArticleTypes)-1)
	if err != nil {
		return err
	}
	choice := ArticleTypes[idx]
	if choice == "All types" {
		s.resolve(FacetArticleType, "", SourceNone)
		return nil
	}
	s.article = choice
	s.resolve(FacetArticleType, choice, SourceUserExplicit)
	return nil
}

// resolveText always elicits explicitly: text availability is never detected
// from the question.
func (s *Session) resolveText() error {
	idx, err := s.prompter.Select("Select text availability:", TextAvailabilities, 0)
	if err != nil {
		return err
	}
	s.text = TextAvailabilities[idx]
	return nil
}

func (s *Session) resolveSubjects() error {
	var detectedHumans, detectedGender bool

	if p, ok := s.detected[FacetHumansOnly]; ok && ShouldAutoApply(p) && MatchHumansOnly(p.Value) {
		fmt.Fprintf(s.w, "Detected subject filter: Human studies only\n")
		detectedHumans = true
	}
	if p, ok := s.detected[FacetGender]; ok && ShouldAutoApply(p) {
		if m, matched := MatchGender(p.Value); matched {
			fmt.Fprintf(s.w, "Detected gender filter: %s\n", m.Label)
			s.gender = m.Value
			detectedGender = true
		}
	}

	if detectedHumans || detectedGender {
		keep, err := s.prompter.Confirm("Use these subject filters?", true)
		if err != nil {
			return err
		}
		if keep {
			s.humans = detectedHumans
			if detectedHumans {
				s.resolve(FacetHumansOnly, "Yes", SourceDetected)
			}
			if detectedGender {
				s.resolve(FacetGender, s.gender, SourceDetected)
			}
			return nil
		}
		s.humans = false
		s.gender = ""
	}

	humans, err := s.prompter.Confirm("Restrict to human studies only?", true)
	if err != nil {
		return err
	}
	s.humans = humans
	if humans {
		s.resolve(FacetHumansOnly, "Yes", SourceUserExplicit)
	} else {
		s.resolve(FacetHumansOnly, "", SourceNone)
	}

	idx, err := s.prompter.Select("Select gender filter:", Genders, 0)
	if err != nil {
		return err
	}
	choice := Genders[idx]
	if choice == "All genders" {
		s.gender = ""
		s.resolve(FacetGender, "", SourceNone)
		return nil
	}
	s.gender = choice
	s.resolve(FacetGender, choice, SourceUserExplicit)
	return nil
}
