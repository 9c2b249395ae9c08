package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// KeyFacts are the data points worth surfacing for quick reference.
type KeyFacts struct {
	Leverage        []string `json:"leverage,omitempty"`
	Spreads         []string `json:"spreads,omitempty"`
	Commissions     []string `json:"commissions,omitempty"`
	MinimumDeposits []string `json:"minimum_deposits,omitempty"`
	Regulations     []string `json:"regulations,omitempty"`
	AccountTypes    []string `json:"account_types,omitempty"`
	Platforms       []string `json:"platforms,omitempty"`
	Instruments     []string `json:"instruments,omitempty"`
}

var (
	leverageRe   = regexp.MustCompile(`(?i)(\d+:\d+)\s*leverage`)
	spreadRe     = regexp.MustCompile(`(?i)spread.*?(\d+\.?\d*)\s*pip`)
	commissionRe = regexp.MustCompile(`(?i)commission.*?(\d+\.?\d*)\s*%`)
	depositRe    = regexp.MustCompile(`(?i)minimum deposit.*?\$(\d+)`)
	regulatorRe  = regexp.MustCompile(`(?i)\b(FCA|FSC|ASIC|CySEC|VFSC|FSA)\b`)
)

var accountTypeMarkers = []string{"Hantec Global", "Hantec Pro", "Hantec Cent"}

var platformMarkers = []struct {
	name string
	re   *regexp.Regexp
}{
	{"MT4", regexp.MustCompile(`(?i)\bMT4\b|MetaTrader 4`)},
	{"MT5", regexp.MustCompile(`(?i)\bMT5\b|MetaTrader 5`)},
	{"Hantec Social", regexp.MustCompile(`(?i)hantec social`)},
	{"Mobile App", regexp.MustCompile(`(?i)mobile app`)},
	{"WebTrader", regexp.MustCompile(`(?i)webtrader`)},
}

var instrumentMarkers = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Forex", regexp.MustCompile(`(?i)forex|currency pair|\bfx\b`)},
	{"CFDs", regexp.MustCompile(`(?i)\bcfds?\b`)},
	{"Commodities", regexp.MustCompile(`(?i)commodit|gold|silver|oil`)},
	{"Indices", regexp.MustCompile(`(?i)indices|index|S&P|FTSE|Dow`)},
	{"Stocks", regexp.MustCompile(`(?i)stock|share|equit`)},
	{"Crypto", regexp.MustCompile(`(?i)crypto|bitcoin|ethereum`)},
}

// ExtractKeyFacts pulls quick-reference facts from cleaned text.
func ExtractKeyFacts(text string) KeyFacts {
	facts := KeyFacts{
		Leverage:        uniqueCaptures(leverageRe, text, false),
		Spreads:         uniqueCaptures(spreadRe, text, false),
		Commissions:     uniqueCaptures(commissionRe, text, false),
		MinimumDeposits: uniqueCaptures(depositRe, text, false),
		Regulations:     uniqueCaptures(regulatorRe, text, true),
	}

	for i, d := range facts.MinimumDeposits {
		facts.MinimumDeposits[i] = "$" + d
	}

	for _, marker := range accountTypeMarkers {
		if strings.Contains(strings.ToLower(text), strings.ToLower(marker)) {
			facts.AccountTypes = append(facts.AccountTypes, marker)
		}
	}
	for _, p := range platformMarkers {
		if p.re.MatchString(text) {
			facts.Platforms = append(facts.Platforms, p.name)
		}
	}
	for _, inst := range instrumentMarkers {
		if inst.re.MatchString(text) {
			facts.Instruments = append(facts.Instruments, inst.name)
		}
	}

	return facts
}

func uniqueCaptures(re *regexp.Regexp, text string, upper bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v := m[1]
		if upper {
			v = strings.ToUpper(v)
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
