// Package sanitize post-processes raw model completions into user-visible
// text. The model is prompted not to emit boilerplate, but prompts are not
// guarantees; this layer enforces tone and compliance rules mechanically.
package sanitize

import (
	"regexp"
	"strings"
)

// Transform order matters: block removals run on the original markup before
// emphasis stripping, because several markers are defined by their bold
// wrapping. Every pattern removes its match completely, which is what makes
// Sanitize idempotent.
var (
	// Risk-warning boilerplate the completion model tends to append even
	// when told not to.
	riskWarningEmojiLine = regexp.MustCompile(`(?m)^.*⚠️\s*Risk Warning.*$`)
	riskWarningBoldLine  = regexp.MustCompile(`(?m)^.*\*\*\s*Risk Warning\s*:?\s*\*\*.*$`)
	importantRiskLine    = regexp.MustCompile(`(?im)^.*\*\*\s*Important\s*:?\s*\*\*.*\brisk\b.*$`)

	// "You might also want to know" suggestion blocks, marker through the
	// next blank line (or end of text).
	suggestionBlock = regexp.MustCompile(`(?is)you might also want to know.*?(\n\s*\n|$)`)

	// Numbered list items that solicit a follow-up instead of answering.
	solicitationItem = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*(Would you like|Interested in|Need help|Want to|Are you).*$`)

	boldMarkers = regexp.MustCompile(`\*\*`)

	sourceLine = regexp.MustCompile(`(?m)^\s*Sources?:.*$`)

	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// Sanitize strips disallowed formatting and content from a raw model
// completion. Idempotent: applying it twice yields the same result.
func Sanitize(raw string) string {
	text := raw

	text = riskWarningEmojiLine.ReplaceAllString(text, "")
	text = riskWarningBoldLine.ReplaceAllString(text, "")
	text = importantRiskLine.ReplaceAllString(text, "")

	text = suggestionBlock.ReplaceAllString(text, "")

	text = solicitationItem.ReplaceAllString(text, "")

	text = boldMarkers.ReplaceAllString(text, "")

	text = sourceLine.ReplaceAllString(text, "")

	text = excessNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
