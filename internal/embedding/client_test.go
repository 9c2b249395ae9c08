package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", c.Model())
}

func TestClient_Embed(t *testing.T) {
	var gotAuth string
	var gotReq embeddingRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		// Out-of-order data entries must still land at the right index.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"index": 1, "embedding": []float32{0.4, 0.5}},
				{"index": 0, "embedding": []float32{0.1, 0.2}},
			},
		})
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	embeddings, err := c.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"first", "second"}, gotReq.Input)
	assert.Equal(t, []float32{0.1, 0.2}, embeddings[0])
	assert.Equal(t, []float32{0.4, 0.5}, embeddings[1])
}

func TestClient_Embed_EmptyInput(t *testing.T) {
	c, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	embeddings, err := c.Embed(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, embeddings)
}

func TestClient_Embed_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Incorrect API key", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	c, err := NewClient(Config{APIKey: "bad-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder(32)

	a, err := m.EmbedSingle(context.Background(), "leverage")
	require.NoError(t, err)
	b, err := m.EmbedSingle(context.Background(), "leverage")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestMockEmbedder_UnitNorm(t *testing.T) {
	m := NewMockEmbedder(16)

	v, err := m.EmbedSingle(context.Background(), "spread")
	require.NoError(t, err)

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}
