// Package followup interprets a short user reply in light of the assistant's
// immediately preceding question. It decides whether the reply is a yes/no
// answer, what kind of question it answers, and how to rewrite the query for
// retrieval. All functions are pure and never fail; any ambiguity degrades to
// "not a follow-up" or a conservative decline.
package followup

import (
	"strings"
)

// QuestionType classifies an assistant-posed question.
type QuestionType string

const (
	// QuestionInterest asks whether the user wants information.
	QuestionInterest QuestionType = "interest"
	// QuestionKnowledge probes the user's existing familiarity.
	QuestionKnowledge QuestionType = "knowledge"
	// QuestionUnknown is any other question.
	QuestionUnknown QuestionType = "unknown"
)

// ResponseType classifies the user's reply to the assistant's question.
type ResponseType string

const (
	// ResponseAffirmative means the user wants the offered information.
	ResponseAffirmative ResponseType = "affirmative"
	// ResponseNegative means the user lacks familiarity; the pipeline should
	// retrieve a beginner-level explanation of the topic.
	ResponseNegative ResponseType = "negative"
	// ResponseDeclined means the user does not want the information; the
	// pipeline must not retrieve or answer the original topic.
	ResponseDeclined ResponseType = "declined"
	// ResponseNeither means the reply is not a follow-up answer at all.
	ResponseNeither ResponseType = "neither"
)

// Decision is the outcome of follow-up resolution.
type Decision struct {
	IsFollowUp     bool
	ResponseType   ResponseType
	QuestionType   QuestionType
	LastQuestion   string
	RewrittenQuery string
}

var notFollowUp = Decision{
	IsFollowUp:   false,
	ResponseType: ResponseNeither,
	QuestionType: QuestionUnknown,
}

// Resolve determines whether newQuery answers a question posed in
// lastAssistantText. The "last question" is the bottom-most line whose
// trimmed content ends with '?'; if no such line exists there is no follow-up
// context.
func Resolve(newQuery, lastAssistantText string) Decision {
	question := LastQuestion(lastAssistantText)
	if question == "" {
		return notFollowUp
	}

	qType := DetectQuestionType(question)

	reply := normalizeReply(newQuery)
	switch {
	case matchesAny(reply, AffirmativeReplies):
		return Decision{
			IsFollowUp:     true,
			ResponseType:   ResponseAffirmative,
			QuestionType:   qType,
			LastQuestion:   question,
			RewrittenQuery: ConvertQuestionToQuery(question, ResponseAffirmative),
		}
	case matchesAny(reply, NegativeReplies):
		rType := resolveNegative(qType)
		d := Decision{
			IsFollowUp:   true,
			ResponseType: rType,
			QuestionType: qType,
			LastQuestion: question,
		}
		if rType == ResponseNegative {
			d.RewrittenQuery = ConvertQuestionToQuery(question, ResponseNegative)
		}
		return d
	default:
		return notFollowUp
	}
}

// resolveNegative maps a negative reply to its outcome. "No" to an interest
// question is a decline; "no" to a knowledge question asks for a simpler
// explanation. An unknown question type is treated as a decline rather than
// risk answering a topic the user refused.
func resolveNegative(qType QuestionType) ResponseType {
	if qType == QuestionKnowledge {
		return ResponseNegative
	}
	return ResponseDeclined
}

// LastQuestion returns the bottom-most line of text whose trimmed content
// ends with '?', or "" when none exists.
func LastQuestion(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasSuffix(line, "?") {
			return line
		}
	}
	return ""
}

// DetectQuestionType classifies an assistant question as interest-seeking or
// knowledge-probing. Interest patterns are checked first; first match wins.
func DetectQuestionType(question string) QuestionType {
	q := strings.ToLower(question)

	for _, re := range InterestQuestionPatterns {
		if re.MatchString(q) {
			return QuestionInterest
		}
	}

	for _, re := range KnowledgeQuestionPatterns {
		if re.MatchString(q) {
			return QuestionKnowledge
		}
	}

	return QuestionUnknown
}

// ConvertQuestionToQuery derives a search query from the assistant's question.
// It strips the trailing '?' and known question-starter boilerplate, then
// biases the result: negative replies get a "how to " prefix (beginner
// explanation), affirmative replies have familiarity wording upgraded to
// "advanced strategies" (deeper explanation). Returns "" when nothing
// meaningful remains.
func ConvertQuestionToQuery(question string, rType ResponseType) string {
	q := strings.ToLower(strings.TrimSpace(question))
	q = strings.TrimSuffix(q, "?")
	q = strings.TrimSpace(q)

	for _, prefix := range questionStarterPrefixes {
		if strings.HasPrefix(q, prefix) {
			q = strings.TrimSpace(strings.TrimPrefix(q, prefix))
			break
		}
	}

	if q == "" {
		return ""
	}

	switch rType {
	case ResponseNegative:
		q = "how to " + q
	case ResponseAffirmative:
		if strings.Contains(q, "familiar") {
			q = strings.ReplaceAll(q, "familiar", "advanced strategies")
		} else if strings.Contains(q, "experience") {
			q = strings.ReplaceAll(q, "experience", "advanced strategies")
		}
	}

	return q
}

// normalizeReply lower-cases, trims, and drops trailing punctuation so that
// "Yes!" and "yes" match the same whole-string pattern.
func normalizeReply(reply string) string {
	r := strings.ToLower(strings.TrimSpace(reply))
	r = strings.TrimRight(r, ".!?")
	return strings.TrimSpace(r)
}

func matchesAny(reply string, patterns []string) bool {
	if reply == "" {
		return false
	}
	for _, p := range patterns {
		if reply == p {
			return true
		}
	}
	return false
}
