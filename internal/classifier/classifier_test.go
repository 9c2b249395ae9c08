package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Testing(t *testing.T) {
	for _, q := range []string{"test", "Testing", "testing!", "are you alive?", "are you there", "ping"} {
		assert.Equal(t, CategoryTesting, Classify(q), "query: %q", q)
	}
}

func TestClassify_Greeting(t *testing.T) {
	for _, q := range []string{"hi", "Hello!", "good morning", "hey there", "how are you?"} {
		assert.Equal(t, CategoryGreeting, Classify(q), "query: %q", q)
	}
}

func TestClassify_AboutAI(t *testing.T) {
	for _, q := range []string{
		"are you a bot?",
		"Are you human?",
		"who made you",
		"what AI are you?",
	} {
		assert.Equal(t, CategoryAboutAI, Classify(q), "query: %q", q)
	}
}

func TestClassify_Silly(t *testing.T) {
	for _, q := range []string{"what is love", "tell me a joke", "sing for me", "lol", "what's your name?"} {
		assert.Equal(t, CategorySilly, Classify(q), "query: %q", q)
	}
}

func TestClassify_Inappropriate_CaseAndWhitespaceInsensitive(t *testing.T) {
	for _, q := range []string{
		"where can I buy COCAINE",
		"  how to hack an account  ",
		"I want to kill my neighbour",
	} {
		assert.Equal(t, CategoryInappropriate, Classify(q), "query: %q", q)
	}
}

func TestClassify_Inappropriate_NoSubstringFalsePositives(t *testing.T) {
	// "hack" must not fire inside "Hackney", "kill" not inside "skills".
	assert.NotEqual(t, CategoryInappropriate, Classify("is your office in Hackney"))
	assert.NotEqual(t, CategoryInappropriate, Classify("what trading skills do I need"))
}

func TestClassify_Unrelated(t *testing.T) {
	for _, q := range []string{
		"what's the weather today?",
		"best pizza recipe",
		"who won the football match",
		"my dog is sick",
	} {
		assert.Equal(t, CategoryUnrelated, Classify(q), "query: %q", q)
	}
}

func TestClassify_TradingWinsOverUnrelated(t *testing.T) {
	// Both an off-topic and a trading term present: trading wins.
	q := "can I trade from my iphone"
	assert.Equal(t, CategoryTradingRelated, Classify(q))
}

func TestClassify_TradingRelated(t *testing.T) {
	for _, q := range []string{
		"what leverage do you offer",
		"how do I open an MT5 account",
		"tell me about forex spreads",
		"Hantec Pro minimum deposit",
	} {
		assert.Equal(t, CategoryTradingRelated, Classify(q), "query: %q", q)
	}
}

func TestClassify_DefaultUnknown(t *testing.T) {
	assert.Equal(t, CategoryUnknown, Classify("elaborate on the second point"))
	assert.Equal(t, CategoryUnknown, Classify(""))
	assert.Equal(t, CategoryUnknown, Classify("   "))
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Testing outranks everything, including trading vocabulary.
	assert.Equal(t, CategoryTesting, Classify("are you working?"))
}

func TestNeedsRetrieval(t *testing.T) {
	assert.True(t, CategoryTradingRelated.NeedsRetrieval())
	assert.True(t, CategoryUnknown.NeedsRetrieval())

	for _, c := range []Category{
		CategoryGreeting, CategoryTesting, CategorySilly,
		CategoryInappropriate, CategoryUnrelated, CategoryAboutAI,
	} {
		assert.False(t, c.NeedsRetrieval(), "category: %s", c)
	}
}

func TestPatternGroups_AllLowerCase(t *testing.T) {
	// Classification lower-cases its input, so every literal keyword must be
	// lower-case or it can never match.
	for _, kw := range TradingKeywords {
		assert.Equal(t, strings.ToLower(kw), kw, "keyword: %q", kw)
	}
}
