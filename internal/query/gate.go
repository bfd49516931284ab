// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "strings"

// ShouldAutoApply reports whether a detected parameter may be applied
// without explicit elicitation. Only a present value (not empty, not the
// literal "null") at High confidence qualifies; Medium and Low always fall
// through to confirmation or manual selection. Auto-applied values still get
// a confirm/reject step before finalizing.
func ShouldAutoApply(p ExtractedParameter) bool {
	if p.Value == "" || strings.EqualFold(p.Value, "null") {
		return false
	}
	return strings.EqualFold(string(p.Confidence), string(ConfidenceHigh))
}
