package retrieval

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hantec-labs/support-engine/internal/observability"
)

// vecEmbedder returns canned vectors keyed by text so similarity ordering in
// tests is exact rather than hash-dependent.
type vecEmbedder struct {
	vectors map[string][]float32
}

func (e *vecEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := e.vectors[t]
		if !ok {
			return nil, errors.New("no vector for text: " + t)
		}
		out[i] = v
	}
	return out, nil
}

func (e *vecEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	out, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (e *vecEmbedder) Model() string { return "test-vectors" }

func staticLoader(docs []Document) Loader {
	return func(ctx context.Context) ([]Document, error) {
		return docs, nil
	}
}

func TestIndex_SearchOrdersByCosineSimilarity(t *testing.T) {
	embedder := &vecEmbedder{vectors: map[string][]float32{
		"what is leverage": {1, 0, 0},
	}}
	docs := []Document{
		{ID: "a", Content: "spreads", Source: "products.txt", Embedding: []float32{0, 1, 0}},
		{ID: "b", Content: "leverage basics", Source: "leverage.txt", Embedding: []float32{1, 0, 0}},
		{ID: "c", Content: "margin and leverage", Source: "margin.txt", Embedding: []float32{0.9, 0.1, 0}},
	}

	idx := NewIndex(observability.Nop(), embedder, staticLoader(docs))

	results, err := idx.Search(context.Background(), "what is leverage", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "leverage basics", results[0].Content)
	assert.Equal(t, "margin and leverage", results[1].Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestIndex_TopKTruncation(t *testing.T) {
	embedder := &vecEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	docs := []Document{
		{ID: "1", Content: "one", Embedding: []float32{1, 0}},
		{ID: "2", Content: "two", Embedding: []float32{0.5, 0.5}},
		{ID: "3", Content: "three", Embedding: []float32{0, 1}},
	}

	idx := NewIndex(nil, embedder, staticLoader(docs))

	results, err := idx.Search(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	// k larger than the corpus returns everything.
	results, err = idx.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestIndex_BuildEmbedsDocumentsWithoutVectors(t *testing.T) {
	embedder := &vecEmbedder{vectors: map[string][]float32{
		"needs embedding": {0, 1},
		"q":               {0, 1},
	}}
	docs := []Document{
		{ID: "pre", Content: "pre-embedded", Embedding: []float32{1, 0}},
		{ID: "raw", Content: "needs embedding"},
	}

	idx := NewIndex(observability.Nop(), embedder, staticLoader(docs))

	results, err := idx.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "needs embedding", results[0].Content)
}

func TestIndex_ConcurrentFirstCallsBuildOnce(t *testing.T) {
	var loads atomic.Int32
	embedder := &vecEmbedder{vectors: map[string][]float32{
		"q": {1, 0},
		"d": {1, 0},
	}}
	loader := func(ctx context.Context) ([]Document, error) {
		loads.Add(1)
		return []Document{{ID: "d", Content: "d"}}, nil
	}

	idx := NewIndex(observability.Nop(), embedder, loader)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := idx.Search(context.Background(), "q", 5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	assert.True(t, idx.Ready())
	assert.Equal(t, 1, idx.Size())
}

func TestIndex_FailedBuildRetriesOnNextCall(t *testing.T) {
	var loads atomic.Int32
	embedder := &vecEmbedder{vectors: map[string][]float32{
		"q": {1, 0},
		"d": {1, 0},
	}}
	loader := func(ctx context.Context) ([]Document, error) {
		if loads.Add(1) == 1 {
			return nil, errors.New("source unavailable")
		}
		return []Document{{ID: "d", Content: "d"}}, nil
	}

	idx := NewIndex(observability.Nop(), embedder, loader)

	_, err := idx.Search(context.Background(), "q", 5)
	require.Error(t, err)
	assert.False(t, idx.Ready())

	results, err := idx.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(2), loads.Load())
}

func TestIndex_WarmBuildsEagerly(t *testing.T) {
	var loads atomic.Int32
	embedder := &vecEmbedder{vectors: map[string][]float32{"d": {1, 0}}}
	loader := func(ctx context.Context) ([]Document, error) {
		loads.Add(1)
		return []Document{{ID: "d", Content: "d"}}, nil
	}

	idx := NewIndex(observability.Nop(), embedder, loader)

	require.NoError(t, idx.Warm(context.Background()))
	require.NoError(t, idx.Warm(context.Background()))
	assert.Equal(t, int32(1), loads.Load())
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
