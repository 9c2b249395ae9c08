package followup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_DeclinedInterestQuestion(t *testing.T) {
	d := Resolve("no", "Leverage lets you control bigger positions.\nWould you like to know more about leverage?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, ResponseDeclined, d.ResponseType)
	assert.Equal(t, QuestionInterest, d.QuestionType)
	assert.Empty(t, d.RewrittenQuery)
}

func TestResolve_NegativeKnowledgeQuestion(t *testing.T) {
	d := Resolve("no", "How familiar are you with leverage?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, ResponseNegative, d.ResponseType)
	assert.Equal(t, QuestionKnowledge, d.QuestionType)
	assert.Contains(t, d.RewrittenQuery, "how to")
	assert.Contains(t, d.RewrittenQuery, "leverage")
}

func TestResolve_AffirmativeInterestQuestion(t *testing.T) {
	d := Resolve("yes please", "Would you like to know more about leverage?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, ResponseAffirmative, d.ResponseType)
	assert.Equal(t, "leverage", d.RewrittenQuery)
}

func TestResolve_AffirmativeKnowledgeQuestion_BiasesAdvanced(t *testing.T) {
	d := Resolve("yes", "What's your experience with CFD trading?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, ResponseAffirmative, d.ResponseType)
	assert.Equal(t, QuestionKnowledge, d.QuestionType)
	// Prefix stripping removes the "what's your experience with" starter, so
	// the remaining topic is used as-is.
	assert.Equal(t, "cfd trading", d.RewrittenQuery)
}

func TestResolve_NoTrailingQuestion(t *testing.T) {
	d := Resolve("yes", "Leverage amplifies both gains and losses.")

	assert.False(t, d.IsFollowUp)
	assert.Equal(t, ResponseNeither, d.ResponseType)
}

func TestResolve_EmptyAssistantText(t *testing.T) {
	assert.False(t, Resolve("yes", "").IsFollowUp)
}

func TestResolve_LongFreeTextNeverMatches(t *testing.T) {
	d := Resolve("yes I was wondering about the withdrawal fees actually", "Would you like to know more?")

	assert.False(t, d.IsFollowUp)
	assert.Equal(t, ResponseNeither, d.ResponseType)
}

func TestResolve_NegativeUnknownQuestionTreatedAsDeclined(t *testing.T) {
	d := Resolve("no", "Is there anything else on your mind today?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, QuestionUnknown, d.QuestionType)
	assert.Equal(t, ResponseDeclined, d.ResponseType)
}

func TestResolve_PunctuationAndCaseInsensitive(t *testing.T) {
	d := Resolve("  YES!  ", "Would you like to know more about spreads?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, ResponseAffirmative, d.ResponseType)
}

func TestResolve_ExperienceLevelWordsAreAffirmative(t *testing.T) {
	d := Resolve("beginner", "How familiar are you with margin trading?")

	assert.True(t, d.IsFollowUp)
	assert.Equal(t, ResponseAffirmative, d.ResponseType)
}

func TestLastQuestion_PicksBottomMost(t *testing.T) {
	text := "Did that help?\nHere is more detail.\nWould you like an example?"
	assert.Equal(t, "Would you like an example?", LastQuestion(text))
}

func TestLastQuestion_ScansUpward(t *testing.T) {
	text := "Would you like to know more about swaps?\nRisk applies to all trading."
	assert.Equal(t, "Would you like to know more about swaps?", LastQuestion(text))
}

func TestDetectQuestionType(t *testing.T) {
	cases := []struct {
		question string
		want     QuestionType
	}{
		{"Would you like to know more about leverage?", QuestionInterest},
		{"Are you interested in our Pro account?", QuestionInterest},
		{"Shall I explain margin calls?", QuestionInterest},
		{"How familiar are you with MT5?", QuestionKnowledge},
		{"Have you tried our demo account?", QuestionKnowledge},
		{"Do you know how spreads work?", QuestionKnowledge},
		{"What time is it?", QuestionUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectQuestionType(tc.question), "question: %q", tc.question)
	}
}

func TestConvertQuestionToQuery_EmptyWhenNothingRemains(t *testing.T) {
	assert.Empty(t, ConvertQuestionToQuery("Would you like?", ResponseAffirmative))
}

func TestConvertQuestionToQuery_FamiliarUpgradedOnAffirmative(t *testing.T) {
	// When the stripped text still mentions familiarity, an affirmative reply
	// biases retrieval toward advanced material.
	q := ConvertQuestionToQuery("Is being familiar with margin important?", ResponseAffirmative)
	assert.Contains(t, q, "advanced strategies")
	assert.NotContains(t, q, "familiar")
}
