package pipeline

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hantec-labs/support-engine/internal/classifier"
)

// Canned reply tables, grouped per category so tests can assert membership.
// Selection is uniform within a group.
var (
	GreetingResponses = []string{
		"Hello! I'm here to help with questions about trading, accounts and our platforms. What would you like to know?",
		"Hi there! Ask me anything about trading with us, from account types to platform features.",
		"Welcome! How can I help you with your trading questions today?",
	}

	TestingResponses = []string{
		"I'm up and running. What trading question can I help you with?",
		"All working on my end. Feel free to ask about accounts, platforms or trading.",
	}

	SillyResponses = []string{
		"I'll leave the jokes to the comedians. I'm much better with trading questions though.",
		"That one's outside my wheelhouse, but I know plenty about trading. Want to ask me something about that?",
		"Nice try! I stick to trading topics. Anything I can help you with there?",
	}

	AboutAIResponses = []string{
		"I'm a virtual assistant built to answer questions about trading and our services. What can I help you with?",
		"I'm an automated support assistant. I can help with accounts, platforms and trading questions.",
	}

	UnrelatedResponses = []string{
		"That's a bit outside what I cover. I can help with trading, accounts and platform questions though.",
		"I focus on trading and account topics, so I can't help with that one. Anything trading-related I can answer?",
		"I'm only able to help with questions about trading and our services. Is there something there I can help with?",
	}

	InappropriateResponses = []string{
		"I can't help with that. If you have a question about trading or your account, I'm happy to assist.",
		"That's not something I can discuss. I'm here for trading and account questions.",
	}

	DeclinedResponses = []string{
		"No problem at all. If you change your mind or have another question, just ask.",
		"Sure thing. I'm here whenever you'd like to know more.",
		"Understood. Feel free to ask about anything else.",
	}
)

// Responder selects canned replies and formats the fixed fallback, escalation
// and error texts. The random source is injectable so tests can pin choices.
type Responder struct {
	mu             sync.Mutex
	rng            *rand.Rand
	supportContact string
}

// NewResponder creates a responder with a time-seeded random source.
func NewResponder(supportContact string) *Responder {
	return NewResponderWithRand(supportContact, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewResponderWithRand creates a responder with the given random source.
func NewResponderWithRand(supportContact string, rng *rand.Rand) *Responder {
	return &Responder{rng: rng, supportContact: supportContact}
}

func (r *Responder) pick(options []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return options[r.rng.Intn(len(options))]
}

// Canned returns the reply and confidence for a non-retrieval category.
// Inappropriate queries get the blocked confidence; every other canned
// category answers at high confidence since the reply is fixed by us.
func (r *Responder) Canned(category classifier.Category) (string, Confidence) {
	switch category {
	case classifier.CategoryGreeting:
		return r.pick(GreetingResponses), ConfidenceHigh
	case classifier.CategoryTesting:
		return r.pick(TestingResponses), ConfidenceHigh
	case classifier.CategorySilly:
		return r.pick(SillyResponses), ConfidenceHigh
	case classifier.CategoryAboutAI:
		return r.pick(AboutAIResponses), ConfidenceHigh
	case classifier.CategoryUnrelated:
		return r.pick(UnrelatedResponses), ConfidenceHigh
	case classifier.CategoryInappropriate:
		return r.pick(InappropriateResponses), ConfidenceBlocked
	default:
		return r.Fallback(), ConfidenceLow
	}
}

// Declined returns the acknowledgment for a declined follow-up.
func (r *Responder) Declined() string {
	return r.pick(DeclinedResponses)
}

// Fallback is returned when retrieval finds nothing useful.
func (r *Responder) Fallback() string {
	return fmt.Sprintf(
		"I don't have specific information about that. Please contact our support team at %s and they'll be happy to help.",
		r.supportContact)
}

// Escalation is returned when the query matches an urgent-issue trigger.
func (r *Responder) Escalation() string {
	return fmt.Sprintf(
		"I'm sorry you're dealing with this. Account issues like this need a human specialist, so please contact our support team directly at %s. They'll prioritise your case.",
		r.supportContact)
}

// Error is the generic failure reply. Internal detail is never shown.
func (r *Responder) Error() string {
	return fmt.Sprintf(
		"Sorry, something went wrong while answering your question. Please try again in a moment, or contact our support team at %s.",
		r.supportContact)
}
