// Package classifier maps raw query text to a conversational category using
// ordered pattern groups. Classification is a pure function of the input; the
// pipeline uses it to decide whether a query deserves retrieval at all.
package classifier

import (
	"strings"
)

// Category is the classified kind of an incoming query.
type Category string

const (
	CategoryGreeting       Category = "greeting"
	CategoryTesting        Category = "testing"
	CategorySilly          Category = "silly"
	CategoryInappropriate  Category = "inappropriate"
	CategoryUnrelated      Category = "unrelated"
	CategoryAboutAI        Category = "about_ai"
	CategoryTradingRelated Category = "trading_related"
	CategoryUnknown        Category = "unknown"
)

// NeedsRetrieval reports whether queries of this category proceed to the
// retrieval-augmented path. Only trading-related and unknown queries do.
func (c Category) NeedsRetrieval() bool {
	return c == CategoryTradingRelated || c == CategoryUnknown
}

// Classify returns the category of a raw query. Pattern groups are evaluated
// in priority order against the lower-cased, trimmed text; the first match
// wins. The trading vocabulary is checked before the unrelated groups, so a
// query mentioning both a trading term and an off-topic term stays on the
// retrieval path.
func Classify(query string) Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return CategoryUnknown
	}

	for _, re := range TestingPatterns {
		if re.MatchString(q) {
			return CategoryTesting
		}
	}

	for _, re := range GreetingPatterns {
		if re.MatchString(q) {
			return CategoryGreeting
		}
	}

	for _, re := range AboutAIPatterns {
		if re.MatchString(q) {
			return CategoryAboutAI
		}
	}

	for _, re := range SillyPatterns {
		if re.MatchString(q) {
			return CategorySilly
		}
	}

	for _, re := range InappropriatePatterns {
		if re.MatchString(q) {
			return CategoryInappropriate
		}
	}

	if containsTradingKeyword(q) {
		return CategoryTradingRelated
	}

	for _, group := range UnrelatedGroups {
		for _, re := range group {
			if re.MatchString(q) {
				return CategoryUnrelated
			}
		}
	}

	return CategoryUnknown
}

func containsTradingKeyword(q string) bool {
	for _, kw := range TradingKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
