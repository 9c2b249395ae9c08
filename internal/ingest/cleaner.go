// Package ingest turns raw scraped knowledge-base pages into clean, chunked
// documents ready for embedding and indexing.
package ingest

import (
	"regexp"
	"strings"
)

// MinDocumentChars is the floor below which a cleaned page carries too little
// content to index.
const MinDocumentChars = 100

// Noise patterns are UI chrome from the scraped site, not content. Grouped
// for readability; all matched case-insensitively per line.
var noisePatterns = []*regexp.Regexp{
	// Navigation.
	regexp.MustCompile(`(?i)Open main menu`),
	regexp.MustCompile(`(?i)Select local office`),

	// Calls to action.
	regexp.MustCompile(`(?i)OPEN AN ACCOUNT`),
	regexp.MustCompile(`(?i)TRY A DEMO`),
	regexp.MustCompile(`(?i)LEARN MORE`),
	regexp.MustCompile(`(?i)DOWNLOAD NOW`),
	regexp.MustCompile(`(?i)GET STARTED`),
	regexp.MustCompile(`(?i)SIGN UP`),
	regexp.MustCompile(`(?i)Start Trading`),

	// List controls.
	regexp.MustCompile(`(?i)FILTERS`),
	regexp.MustCompile(`(?i)SHOW MORE`),
	regexp.MustCompile(`(?i)SHOW LESS`),
	regexp.MustCompile(`(?i)Load More`),

	// Social links.
	regexp.MustCompile(`(?i)(Twitter|Linkedin|Facebook|Instagram|Line) page`),
	regexp.MustCompile(`(?i)Youtube channel`),
	regexp.MustCompile(`(?i)Follow us`),

	// Footer navigation.
	regexp.MustCompile(`(?im)Cookie Policy\s*$`),
	regexp.MustCompile(`(?im)Privacy Policy\s*$`),
	regexp.MustCompile(`(?im)Terms And Conditions\s*$`),
	regexp.MustCompile(`(?im)Marketing Preferences\s*$`),
	regexp.MustCompile(`(?i)preferences-of-communication`),
	regexp.MustCompile(`(?i)unsubscribe`),
}

// Trade-signal spam embedded in blog pages.
var signalSpamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)(PREMIUM|INTRADAY|BUY LIMIT|SELL LIMIT|LIVE TRADE)\s*\n`),
	regexp.MustCompile(`(?im)(Entry|Target|Stop|Confidence|Expires)\s*\n`),
	regexp.MustCompile(`(?s)To unlock this trade idea.*?account\.`),
	regexp.MustCompile(`\d+h \d+m`),
}

// sectionHeaders get promoted to markdown headings so chunk boundaries fall
// on meaningful sections.
var sectionHeaders = []string{
	"Why trade with Hantec Markets?",
	"Features",
	"Benefits",
	"How it works",
	"Requirements",
	"Specifications",
	"FAQ",
	"Trading accounts to suit you",
	"New to trading?",
	"Partner with us",
	"Key Statistics",
	"Contact Information",
	"Regulatory Information",
	"Product Overview",
	"Platform Features",
	"Account Types",
}

var (
	sourceHeader    = regexp.MustCompile(`(?m)^SOURCE:.*\n=+\n\n?`)
	sourceURLLine   = regexp.MustCompile(`SOURCE:\s*(https?://\S+)`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
	excessSpaces    = regexp.MustCompile(` {2,}`)
	longDashRuns    = regexp.MustCompile(`-{10,}`)
	longEqualRuns   = regexp.MustCompile(`={10,}`)
	dedupeThreshold = 100
)

// SourceURL extracts the scraped page URL from a raw file, if present.
func SourceURL(raw string) string {
	if m := sourceURLLine.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// Clean strips UI noise from a scraped page and returns the cleaned text plus
// the fraction of input characters retained.
func Clean(raw string) (string, float64) {
	text := raw

	text = sourceHeader.ReplaceAllString(text, "")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = excessSpaces.ReplaceAllString(text, " ")

	for _, p := range noisePatterns {
		text = p.ReplaceAllString(text, "")
	}
	for _, p := range signalSpamPatterns {
		text = p.ReplaceAllString(text, "")
	}

	text = longDashRuns.ReplaceAllString(text, "")
	text = longEqualRuns.ReplaceAllString(text, "")

	text = trimLines(text)
	text = promoteHeaders(text)
	text = dedupeLines(text)
	text = strings.TrimSpace(text)

	retention := 0.0
	if len(raw) > 0 {
		retention = float64(len(text)) / float64(len(raw))
	}
	return text, retention
}

func trimLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 1 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func promoteHeaders(text string) string {
	for _, header := range sectionHeaders {
		text = strings.ReplaceAll(text, header, "\n## "+header+"\n")
	}
	return text
}

// dedupeLines drops repeated lines (footer fragments recur on every page)
// while keeping long duplicates, which tend to be genuine content.
func dedupeLines(text string) string {
	seen := make(map[string]bool)
	var unique []string
	for _, line := range strings.Split(text, "\n") {
		if !seen[line] || len(line) > dedupeThreshold {
			seen[line] = true
			unique = append(unique, line)
		}
	}
	return strings.Join(unique, "\n")
}
