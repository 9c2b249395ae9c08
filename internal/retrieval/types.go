// Package retrieval provides the in-memory vector index and confidence
// scoring for knowledge-base search.
package retrieval

import "context"

// Document is an indexed chunk of knowledge-base content.
type Document struct {
	ID        string
	Content   string
	Source    string
	Category  string
	Embedding []float32
}

// RetrievedDocument is one ranked search hit. The sequence returned by Search
// is ordered best-first and is not deduplicated; display-level dedup happens
// when source labels are formatted.
type RetrievedDocument struct {
	Content string
	Source  string
	Score   float64
}

// Searcher is the retrieval collaborator consumed by the query pipeline.
// Implementations must be read-only and safe for concurrent use.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]RetrievedDocument, error)
}
