package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hantec-labs/support-engine/internal/embedding"
	"github.com/hantec-labs/support-engine/internal/observability"
)

// Loader supplies the documents to index. It is invoked at most once per
// successful build, typically backed by the ingest pipeline or a snapshot
// file.
type Loader func(ctx context.Context) ([]Document, error)

// Index is an in-memory cosine-similarity index built lazily on first use.
// Concurrent first callers share a single build; if the build fails, the
// next caller retries it.
type Index struct {
	logger   *observability.Logger
	embedder embedding.Embedder
	loader   Loader

	buildGroup singleflight.Group

	mu    sync.RWMutex
	docs  []Document
	ready bool
}

// NewIndex creates an index over the loader's documents. Nothing is loaded
// or embedded until the first Search or Warm call.
func NewIndex(logger *observability.Logger, embedder embedding.Embedder, loader Loader) *Index {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Index{
		logger:   logger.WithComponent("retrieval"),
		embedder: embedder,
		loader:   loader,
	}
}

// Warm builds the index eagerly. Optional; Search builds on demand.
func (idx *Index) Warm(ctx context.Context) error {
	return idx.ensureReady(ctx)
}

// Size returns the number of indexed documents, or 0 before the first build.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Ready reports whether the index has been built.
func (idx *Index) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.ready
}

func (idx *Index) ensureReady(ctx context.Context) error {
	idx.mu.RLock()
	ready := idx.ready
	idx.mu.RUnlock()
	if ready {
		return nil
	}

	// All concurrent callers wait on one build. The build itself runs with
	// cancellation detached so one caller hanging up cannot abort the work
	// the others are waiting on.
	_, err, _ := idx.buildGroup.Do("build", func() (interface{}, error) {
		idx.mu.RLock()
		ready := idx.ready
		idx.mu.RUnlock()
		if ready {
			return nil, nil
		}
		return nil, idx.build(context.WithoutCancel(ctx))
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (idx *Index) build(ctx context.Context) error {
	start := time.Now()

	docs, err := idx.loader(ctx)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	// Embed only documents the loader did not pre-embed.
	var texts []string
	var missing []int
	for i := range docs {
		if len(docs[i].Embedding) == 0 {
			texts = append(texts, docs[i].Content)
			missing = append(missing, i)
		}
	}

	if len(texts) > 0 {
		embeddings, err := idx.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed documents: %w", err)
		}
		if len(embeddings) != len(texts) {
			return fmt.Errorf("embed documents: got %d embeddings for %d texts", len(embeddings), len(texts))
		}
		for j, i := range missing {
			docs[i].Embedding = embeddings[j]
		}
	}

	idx.mu.Lock()
	idx.docs = docs
	idx.ready = true
	idx.mu.Unlock()

	idx.logger.Info().
		Int("documents", len(docs)).
		Int("embedded", len(texts)).
		Dur("duration", time.Since(start)).
		Msg("Vector index built")

	return nil
}

// Search embeds the query and returns the top k documents by cosine
// similarity, best first. Builds the index on first use.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]RetrievedDocument, error) {
	if err := idx.ensureReady(ctx); err != nil {
		return nil, err
	}

	queryVec, err := idx.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]RetrievedDocument, 0, len(idx.docs))
	for i := range idx.docs {
		score := cosineSimilarity(queryVec, idx.docs[i].Embedding)
		results = append(results, RetrievedDocument{
			Content: idx.docs[i].Content,
			Source:  idx.docs[i].Source,
			Score:   score,
		})
	}

	sort.Slice(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}

	return results, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ Searcher = (*Index)(nil)
