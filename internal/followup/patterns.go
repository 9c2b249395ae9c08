package followup

import "regexp"

// InterestQuestionPatterns match assistant questions that offer information
// ("Would you like to know...?"). A "no" to these means "don't tell me".
var InterestQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwould you like\b`),
	regexp.MustCompile(`\bdo you want\b`),
	regexp.MustCompile(`\bwant to (know|learn|hear|see)\b`),
	regexp.MustCompile(`\bare you interested\b`),
	regexp.MustCompile(`\binterested in (knowing|learning|hearing)\b`),
	regexp.MustCompile(`\bshall i\b`),
	regexp.MustCompile(`\bshould i (explain|show|tell)\b`),
	regexp.MustCompile(`\bcan i help\b`),
	regexp.MustCompile(`\bready to\b`),
	regexp.MustCompile(`\bneed help with\b`),
}

// KnowledgeQuestionPatterns match assistant questions that probe existing
// familiarity ("How familiar are you with...?"). A "no" to these means
// "explain it simply".
var KnowledgeQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bhow familiar are you\b`),
	regexp.MustCompile(`\bare you familiar\b`),
	regexp.MustCompile(`\bdo you know\b`),
	regexp.MustCompile(`\bhave you (tried|used|heard)\b`),
	regexp.MustCompile(`\bwhat('s| is) your experience\b`),
	regexp.MustCompile(`\bhow much do you know\b`),
	regexp.MustCompile(`\bhow experienced are you\b`),
}

// AffirmativeReplies are whole-string matches for short positive answers.
// Longer free-text replies never match, so they never trigger follow-up
// handling.
var AffirmativeReplies = []string{
	"yes", "yes please", "yes pls", "yeah", "yea", "yep", "yup", "ya",
	"sure", "sure thing", "ok", "okay", "k", "kk", "alright", "all right",
	"of course", "definitely", "absolutely", "certainly", "indeed",
	"please", "please do", "go ahead", "go on", "continue", "proceed",
	"sounds good", "sounds great", "why not", "i'd love to", "i would love to",
	"tell me", "tell me more", "more", "more please", "show me",
	"i do", "i am", "i have", "a little", "a bit", "somewhat", "kind of", "sort of",
	"beginner", "intermediate", "advanced", "expert", "newbie", "new", "pro",
	"now", "right now", "yes now", "today", "lets go", "let's go",
}

// NegativeReplies are whole-string matches for short negative, deferring, or
// uncertain answers.
var NegativeReplies = []string{
	"no", "nope", "nah", "na", "no thanks", "no thank you", "not really",
	"not interested", "i don't", "i dont", "i don't know", "i dont know",
	"dont know", "don't know", "dunno", "idk", "no idea", "not sure",
	"i'm not sure", "im not sure", "maybe", "hmm", "hm",
	"not now", "later", "maybe later", "another time", "some other time",
	"skip", "skip it", "pass", "nevermind", "never mind", "forget it",
	"leave it", "it's ok", "its ok", "it's fine", "its fine",
	"i'm good", "im good", "no need", "never",
}

// questionStarterPrefixes are stripped from an assistant question when
// deriving a search query from it. Longest prefixes first so greedy matching
// removes the most boilerplate.
var questionStarterPrefixes = []string{
	"would you like to know more about",
	"would you like to know about",
	"would you like to learn more about",
	"would you like to learn about",
	"would you like me to explain",
	"would you like to know",
	"would you like to see",
	"would you like",
	"do you want to know more about",
	"do you want to know about",
	"do you want me to explain",
	"do you want to know",
	"do you want",
	"are you interested in learning about",
	"are you interested in",
	"how familiar are you with",
	"how much do you know about",
	"are you familiar with",
	"what's your experience with",
	"what is your experience with",
	"have you tried",
	"have you used",
	"have you heard of",
	"have you heard about",
	"do you know about",
	"do you know",
	"shall i explain",
	"shall i show you",
	"shall i",
	"should i explain",
	"can i help you with",
	"need help with",
	"ready to",
	"want to know about",
	"want to learn about",
}
