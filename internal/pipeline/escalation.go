package pipeline

import "strings"

// EscalationTriggers are substrings that indicate an urgent account issue
// needing human handoff. Matched against the lower-cased query before any
// retrieval happens; a triggered query never reaches the completion model.
var EscalationTriggers = []string{
	// Withdrawal problems.
	"can't withdraw",
	"cannot withdraw",
	"withdrawal not working",
	"withdrawal stuck",
	"withdrawal pending",
	"withdrawal rejected",
	"money not received",
	"haven't received my money",
	"where is my money",

	// Unauthorized activity.
	"unauthorized trade",
	"unauthorised trade",
	"trades i didn't make",
	"didn't place this trade",
	"account hacked",
	"someone accessed my account",

	// Lockouts.
	"locked out",
	"account locked",
	"account blocked",
	"account suspended",
	"can't log in",
	"cannot log in",
	"can't access my account",

	// Pressure from account managers.
	"account manager is pressuring",
	"manager keeps calling",
	"pressured to deposit",
	"forced to deposit",

	// Fraud and scam mentions.
	"scam",
	"scammed",
	"fraud",
	"stolen",
	"report this company",
	"legal action",
	"lawyer",
	"regulator complaint",
}

// IsEscalation reports whether the query mentions an urgent account issue.
func IsEscalation(query string) bool {
	q := strings.ToLower(query)
	for _, trigger := range EscalationTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}
