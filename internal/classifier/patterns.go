package classifier

import "regexp"

// Pattern groups are evaluated in a fixed priority order (see Classify).
// Each group is exported so tests can enumerate every pattern in a group.

// TestingPatterns match connectivity checks and "are you alive" probes.
var TestingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^test(ing)?[.!?]*$`),
	regexp.MustCompile(`^(just |a )?test(ing)?( message)?[.!?]*$`),
	regexp.MustCompile(`\bare you (there|alive|working|online|up)\b`),
	regexp.MustCompile(`\bdoes this (thing |bot )?(work|even work)\b`),
	regexp.MustCompile(`^(hello\?+|anyone there\??)$`),
	regexp.MustCompile(`^(ping|echo)[.!?]*$`),
}

// GreetingPatterns match pure salutations with no question attached.
var GreetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hii+|hey|heya|hello|howdy|yo|sup|hiya)[.!?]*$`),
	regexp.MustCompile(`^good (morning|afternoon|evening|day)[.!?]*$`),
	regexp.MustCompile(`^(hi|hey|hello) (there|bot|assistant)[.!?]*$`),
	regexp.MustCompile(`^how are you( doing| today)?\??$`),
	regexp.MustCompile(`^(what's up|whats up|wassup)\??$`),
}

// AboutAIPatterns match questions about the assistant itself.
var AboutAIPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bare you (a |an )?(bot|robot|ai|human|real person|machine|computer)\b`),
	regexp.MustCompile(`\bam i talking to (a |an )?(bot|robot|ai|human|machine)\b`),
	regexp.MustCompile(`\bwho (made|created|built|programmed) you\b`),
	regexp.MustCompile(`\bwhat (ai|model|llm) (are you|do you use|runs you)\b`),
	regexp.MustCompile(`\bare you (chatgpt|gpt|claude|gemini)\b`),
	regexp.MustCompile(`\bhow do you work\b`),
}

// SillyPatterns match playful or meta questions with no support intent.
var SillyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwhat is love\b`),
	regexp.MustCompile(`\btell me a joke\b`),
	regexp.MustCompile(`\b(sing|dance|rap|beatbox) (for me|a song|something)?\b`),
	regexp.MustCompile(`\bwhat('s| is) your (name|favorite|favourite)\b`),
	regexp.MustCompile(`\bdo you (dream|sleep|eat|feel|love|have feelings)\b`),
	regexp.MustCompile(`\bmeaning of life\b`),
	regexp.MustCompile(`^(lol|lmao|rofl|haha+|hehe+|xd)[.!?]*$`),
	regexp.MustCompile(`\bknock knock\b`),
	regexp.MustCompile(`\bmarry me\b`),
}

// InappropriatePatterns match adult, violent, illegal, or drug-related terms.
// Word-boundary anchored so they never fire inside unrelated words.
var InappropriatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(porn|pornography|nude|nudes|naked|sexual|xxx)\b`),
	regexp.MustCompile(`\b(kill|murder|shoot|stab|bomb|terrorist|terrorism)\b`),
	regexp.MustCompile(`\b(hack|hacking|steal|stolen|launder|laundering|counterfeit)\b`),
	regexp.MustCompile(`\b(cocaine|heroin|meth|weed|marijuana|drugs? deal)\b`),
	regexp.MustCompile(`\b(suicide|self[- ]harm)\b`),
	regexp.MustCompile(`\b(fuck|shit|bitch|asshole|cunt)\b`),
}

// TradingKeywords is the domain vocabulary. Any occurrence marks the query as
// trading related, and this check runs before the unrelated groups so domain
// relevance always wins over incidental off-topic vocabulary.
var TradingKeywords = []string{
	"trade", "trading", "trader", "forex", "fx", "cfd", "cfds",
	"leverage", "margin", "spread", "spreads", "pip", "pips", "lot size",
	"broker", "brokerage", "deposit", "withdraw", "withdrawal", "funding",
	"account", "demo", "live account", "equity", "balance", "swap",
	"stop loss", "take profit", "pending order", "position", "hedge", "hedging",
	"mt4", "mt5", "metatrader", "webtrader", "platform", "terminal",
	"hantec", "hantec global", "hantec pro", "hantec cent", "hantec social",
	"currency", "currencies", "eurusd", "gbpusd", "usdjpy", "gold", "silver",
	"oil", "indices", "index", "commodities", "commodity", "crypto", "bitcoin",
	"stocks", "shares", "bullion", "instrument", "instruments",
	"chart", "candlestick", "analysis", "signal", "signals", "strategy",
	"regulation", "regulated", "fca", "fsc", "asic", "kyc", "verification",
	"commission", "fees", "slippage", "requote", "execution",
	"bonus", "rebate", "introducing broker", "affiliate", "pamm", "copy trading",
}

// UnrelatedGroups hold off-topic vocabulary by theme. Matched with word
// boundaries, and only consulted after the trading vocabulary misses.
var UnrelatedGroups = map[string][]*regexp.Regexp{
	"food": {
		regexp.MustCompile(`\b(recipe|pizza|burger|pasta|restaurant|cooking|bake|baking)\b`),
	},
	"entertainment": {
		regexp.MustCompile(`\b(movie|movies|netflix|song|songs|album|concert|celebrity|tv show)\b`),
	},
	"sports": {
		regexp.MustCompile(`\b(football|soccer|cricket|basketball|tennis|match score|world cup)\b`),
	},
	"weather": {
		regexp.MustCompile(`\b(weather|temperature|raining|snowing|sunny|forecast)\b`),
	},
	"travel": {
		regexp.MustCompile(`\b(flight|flights|hotel|vacation|holiday trip|tourist|visa application)\b`),
	},
	"health": {
		regexp.MustCompile(`\b(doctor|medicine|headache|fever|workout|diet plan|symptoms)\b`),
	},
	"tech": {
		regexp.MustCompile(`\b(iphone|android|laptop|printer|wifi router|video game|playstation|xbox)\b`),
	},
	"pets": {
		regexp.MustCompile(`\b(dog|cat|puppy|kitten|pet food|veterinarian)\b`),
	},
	"school": {
		regexp.MustCompile(`\b(homework|essay|exam|university application|math problem)\b`),
	},
}
