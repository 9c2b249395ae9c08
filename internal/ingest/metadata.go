package ingest

import (
	"regexp"
	"strings"
)

// Metadata summarizes a cleaned document's content shape.
type Metadata struct {
	WordCount     int      `json:"word_count"`
	CharCount     int      `json:"char_count"`
	HasNumbers    bool     `json:"has_numbers"`
	HasPricing    bool     `json:"has_pricing"`
	HasContact    bool     `json:"has_contact"`
	HasRegulatory bool     `json:"has_regulatory"`
	HasTutorial   bool     `json:"has_tutorial"`
	Topics        []string `json:"topics"`
}

var (
	numbersRe    = regexp.MustCompile(`\d+`)
	pricingRe    = regexp.MustCompile(`(?i)(\$|commission|spread|fee|cost|charge)`)
	contactRe    = regexp.MustCompile(`(?i)(email|phone|contact|@|\+\d+)`)
	regulatoryRe = regexp.MustCompile(`(?i)(FCA|FSC|ASIC|VFSC|regulat|licens|complian)`)
	tutorialRe   = regexp.MustCompile(`(?i)(how to|step|guide|tutorial|learn)`)
)

// topicKeywords map topic labels to vocabulary, checked as substrings of the
// lower-cased text.
var topicKeywords = map[string][]string{
	"trading":    {"trade", "trading", "trader", "market"},
	"platform":   {"mt4", "mt5", "metatrader", "platform", "app"},
	"account":    {"account", "registration", "signup", "demo", "live"},
	"product":    {"forex", "cfd", "stock", "crypto", "commodity", "index"},
	"education":  {"learn", "guide", "tutorial", "education", "course"},
	"regulation": {"fca", "fsc", "regulated", "license", "compliant"},
	"payment":    {"deposit", "withdraw", "payment", "fund", "transfer"},
}

// topicOrder keeps Topics output deterministic.
var topicOrder = []string{"trading", "platform", "account", "product", "education", "regulation", "payment"}

// ExtractMetadata derives content-shape metadata from cleaned text.
func ExtractMetadata(text string) Metadata {
	lower := strings.ToLower(text)

	var topics []string
	for _, topic := range topicOrder {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lower, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}

	return Metadata{
		WordCount:     len(strings.Fields(text)),
		CharCount:     len(text),
		HasNumbers:    numbersRe.MatchString(text),
		HasPricing:    pricingRe.MatchString(text),
		HasContact:    contactRe.MatchString(text),
		HasRegulatory: regulatoryRe.MatchString(text),
		HasTutorial:   tutorialRe.MatchString(text),
		Topics:        topics,
	}
}
