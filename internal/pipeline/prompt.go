package pipeline

import (
	"fmt"
	"strings"

	"github.com/hantec-labs/support-engine/internal/completion"
	"github.com/hantec-labs/support-engine/internal/retrieval"
)

// buildSystemPrompt fixes the assistant's persona and output rules. The
// sanitizer enforces the formatting rules mechanically afterwards; the prompt
// just reduces how often it has to.
func buildSystemPrompt(companyName string) string {
	return fmt.Sprintf(`You are a customer support assistant for %s, a forex and CFD broker.

Answer the user's question using ONLY the provided context. Be concise and friendly.

Rules:
- Do not add risk warnings or regulatory disclaimers.
- Do not use bold or other markdown emphasis.
- Do not suggest follow-up topics or ask "would you like" questions.
- Do not list your sources.
- If the context does not answer the question, say you don't have that information.`, companyName)
}

// buildContext concatenates retrieved documents into the prompt context,
// each prefixed with an index label.
func buildContext(docs []retrieval.RetrievedDocument) string {
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, strings.TrimSpace(doc.Content))
	}
	return strings.TrimSpace(b.String())
}

// buildMessages assembles the completion request for a knowledge query.
func buildMessages(companyName, docContext, query string) []completion.Message {
	return []completion.Message{
		{Role: "system", Content: buildSystemPrompt(companyName)},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", docContext, query)},
	}
}

// formatSources returns up to three source labels, deduplicated, preserving
// rank order.
func formatSources(docs []retrieval.RetrievedDocument) []string {
	sources := make([]string, 0, 3)
	seen := make(map[string]bool)
	for _, doc := range docs {
		if doc.Source == "" || seen[doc.Source] {
			continue
		}
		seen[doc.Source] = true
		sources = append(sources, doc.Source)
		if len(sources) == 3 {
			break
		}
	}
	return sources
}
