package ingest

import "strings"

// categoryVocab scores categories by keyword hits. Filename hits count triple
// since the scraped filename mirrors the page URL path.
var categoryVocab = []struct {
	name     string
	keywords []string
	weight   float64
}{
	{"platforms", []string{"mt4", "mt5", "metatrader", "webtrader", "platform", "app", "mobile", "client portal", "trading terminal"}, 1.0},
	{"products", []string{"forex", "cfd", "commodit", "indices", "stock", "crypto", "bullion", "metal", "currency", "etf", "pairs", "instrument"}, 1.0},
	{"education", []string{"learn", "education", "guide", "tutorial", "hub", "glossary", "macro", "risk management", "strategy", "indicator", "analysis"}, 1.0},
	{"accounts", []string{"account", "global", "pro", "cent", "demo", "registration", "signup", "live account"}, 1.0},
	{"tools", []string{"calculator", "tool", "calendar", "economic", "signal", "analysis", "terminal", "widget"}, 0.8},
	{"about", []string{"about", "company", "contact", "sponsor", "team", "office"}, 0.7},
	{"support", []string{"help", "faq", "support", "question", "how to", "how-to"}, 0.9},
	{"legal", []string{"legal", "terms", "condition", "policy", "privacy", "compliance", "regulation", "bonus", "offer"}, 0.8},
	{"funding", []string{"deposit", "withdraw", "funding", "payment", "bank", "transfer", "method"}, 1.0},
	{"partners", []string{"partner", "affiliate", "pamm", "introducing broker", "commission"}, 0.8},
	{"blog", []string{"blog/", "article", "news", "insight"}, 0.5},
}

// DefaultCategory is used when no category vocabulary matches.
const DefaultCategory = "general"

// Categorize assigns a cleaned document to a category by weighted keyword
// scoring over filename and content.
func Categorize(filename, text string) string {
	filenameLower := strings.ToLower(filename)
	textLower := strings.ToLower(text)

	best := DefaultCategory
	bestScore := 0.0

	for _, cat := range categoryVocab {
		var filenameHits, contentHits int
		for _, kw := range cat.keywords {
			if strings.Contains(filenameLower, kw) {
				filenameHits++
			}
			if strings.Contains(textLower, kw) {
				contentHits++
			}
		}

		score := float64(filenameHits*3+contentHits) * cat.weight
		if score > bestScore {
			bestScore = score
			best = cat.name
		}
	}

	return best
}
