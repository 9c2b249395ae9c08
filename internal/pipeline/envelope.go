// Package pipeline sequences classification, follow-up resolution, retrieval,
// completion and sanitization into one request-scoped state machine.
package pipeline

// Confidence labels a response envelope. The first three mirror retrieval
// confidence tiers; the rest mark short-circuit outcomes that bypass scoring.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"

	ConfidenceBlocked    Confidence = "blocked"
	ConfidenceEscalation Confidence = "escalation"
	ConfidenceError      Confidence = "error"
)

// Turn is one prior conversation exchange, most recent last.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Metadata carries per-request diagnostics alongside the response text.
type Metadata struct {
	Category          string  `json:"category"`
	IsFollowUp        bool    `json:"isFollowUp,omitempty"`
	FollowUpResponse  string  `json:"followUpResponse,omitempty"`
	RewrittenQuery    string  `json:"rewrittenQuery,omitempty"`
	RetrievedDocCount int     `json:"retrievedDocCount"`
	TopScore          float64 `json:"topScore"`
	DurationMs        int64   `json:"durationMs"`
	Cached            bool    `json:"cached,omitempty"`
}

// ResponseEnvelope is the assembled result of one processed query.
type ResponseEnvelope struct {
	Text       string     `json:"response"`
	Confidence Confidence `json:"confidence"`
	Sources    []string   `json:"sources"`
	Metadata   Metadata   `json:"metadata"`
}
