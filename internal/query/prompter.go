// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

// Prompter is the interactive surface the session uses for confirmation and
// manual elicitation. The CLI supplies a terminal implementation; tests use
// scripted fakes. Implementations are responsible for re-asking on malformed
// entries (non-numeric menu choices and the like) so the session only ever
// sees valid answers.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer; def is used
	// when the user just presses enter.
	Confirm(prompt string, def bool) (bool, error)

	// Select presents numbered options and returns the chosen index.
	Select(prompt string, options []string, def int) (int, error)

	// Input asks for a free-form line of text.
	Input(prompt, def string) (string, error)
}
