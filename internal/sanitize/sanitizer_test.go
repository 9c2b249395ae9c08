package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_RemovesRiskWarningLines(t *testing.T) {
	raw := "Leverage lets you control a larger position.\n⚠️ Risk Warning: CFDs are complex instruments.\nSpreads start from 0.1 pips."
	got := Sanitize(raw)

	assert.NotContains(t, got, "Risk Warning")
	assert.Contains(t, got, "Leverage lets you control a larger position.")
	assert.Contains(t, got, "Spreads start from 0.1 pips.")
}

func TestSanitize_RemovesBoldRiskWarning(t *testing.T) {
	raw := "Here is how margin works.\n**Risk Warning:** Trading involves risk of loss."
	got := Sanitize(raw)

	assert.NotContains(t, got, "Risk Warning")
	assert.Equal(t, "Here is how margin works.", got)
}

func TestSanitize_RemovesImportantRiskLine(t *testing.T) {
	raw := "Gold trades around the clock.\n**Important:** past performance does not remove risk of loss."
	got := Sanitize(raw)

	assert.NotContains(t, got, "Important")
	assert.Equal(t, "Gold trades around the clock.", got)
}

func TestSanitize_KeepsImportantLineWithoutRisk(t *testing.T) {
	raw := "**Important:** verification takes one business day."
	got := Sanitize(raw)

	assert.Contains(t, got, "Important: verification takes one business day.")
}

func TestSanitize_RemovesSuggestionBlock(t *testing.T) {
	raw := "Spreads vary by account type.\n\nYou might also want to know:\n- Our swap rates\n- Deposit methods\n\nLet me know."
	got := Sanitize(raw)

	assert.NotContains(t, got, "might also want to know")
	assert.NotContains(t, got, "swap rates")
	assert.Contains(t, got, "Spreads vary by account type.")
	assert.Contains(t, got, "Let me know.")
}

func TestSanitize_RemovesSuggestionBlockAtEnd(t *testing.T) {
	raw := "MT5 supports hedging.\n\nYou might also want to know about our mobile app"
	got := Sanitize(raw)

	assert.Equal(t, "MT5 supports hedging.", got)
}

func TestSanitize_RemovesSolicitationListItems(t *testing.T) {
	raw := "You can fund via bank transfer.\n1. Would you like help with deposits?\n2. Need help with verification?\n3. Bank transfers take 1-3 days."
	got := Sanitize(raw)

	assert.NotContains(t, got, "Would you like")
	assert.NotContains(t, got, "Need help")
	assert.Contains(t, got, "3. Bank transfers take 1-3 days.")
}

func TestSanitize_StripsBoldMarkers(t *testing.T) {
	raw := "The **minimum deposit** is **$10**."
	assert.Equal(t, "The minimum deposit is $10.", Sanitize(raw))
}

func TestSanitize_RemovesSourceLines(t *testing.T) {
	raw := "Withdrawals take 1-2 business days.\nSources: funding.txt, accounts.txt"
	assert.Equal(t, "Withdrawals take 1-2 business days.", Sanitize(raw))

	raw = "Spreads start at 0.0 pips.\nSource: products.txt"
	assert.Equal(t, "Spreads start at 0.0 pips.", Sanitize(raw))
}

func TestSanitize_CollapsesNewlinesAndTrims(t *testing.T) {
	raw := "\n\nFirst paragraph.\n\n\n\n\nSecond paragraph.\n\n"
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", Sanitize(raw))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"Plain answer with no markup.",
		"**Bold** answer.\n⚠️ Risk Warning: risk.\nYou might also want to know:\n- thing\n\nEnd.",
		"1. Would you like a demo?\n\n\n\nAnswer here.\nSources: a.txt",
		"",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input: %q", in)
	}
}

func TestSanitize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "", Sanitize("   \n\n  "))
}
