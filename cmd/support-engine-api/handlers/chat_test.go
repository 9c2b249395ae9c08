package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hantec-labs/support-engine/internal/completion"
	"github.com/hantec-labs/support-engine/internal/observability"
	"github.com/hantec-labs/support-engine/internal/pipeline"
	"github.com/hantec-labs/support-engine/internal/retrieval"
	"github.com/hantec-labs/support-engine/internal/storage"
)

type stubSearcher struct {
	docs []retrieval.RetrievedDocument
	err  error
}

func (s *stubSearcher) Search(ctx context.Context, query string, k int) ([]retrieval.RetrievedDocument, error) {
	return s.docs, s.err
}

type stubCompleter struct {
	text string
	err  error
}

func (c *stubCompleter) Complete(ctx context.Context, messages []completion.Message) (string, error) {
	return c.text, c.err
}

func (c *stubCompleter) Model() string { return "stub" }

func newTestHandler(searcher retrieval.Searcher, completer completion.Completer) *ChatHandler {
	p := pipeline.New(pipeline.Options{
		Logger:    observability.Nop(),
		Searcher:  searcher,
		Completer: completer,
		Recorder:  storage.NopRecorder{},
	})
	return NewChatHandler(observability.Nop(), p, nil, storage.NopRecorder{})
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestChat_GreetingReturnsCannedResponse(t *testing.T) {
	h := newTestHandler(&stubSearcher{}, &stubCompleter{})

	rec := postChat(t, h, `{"query": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env pipeline.ResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, pipeline.ConfidenceHigh, env.Confidence)
	require.Equal(t, "greeting", env.Metadata.Category)
	require.NotEmpty(t, env.Text)
}

func TestChat_KnowledgeQueryReturnsAnswer(t *testing.T) {
	searcher := &stubSearcher{docs: []retrieval.RetrievedDocument{
		{Content: "Leverage up to 1:500 on forex majors.", Source: "leverage.txt", Score: 0.82},
		{Content: "Leverage varies per instrument.", Source: "products.txt", Score: 0.74},
	}}
	h := newTestHandler(searcher, &stubCompleter{text: "Hantec offers leverage up to 1:500."})

	rec := postChat(t, h, `{"query": "what leverage do you offer?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env pipeline.ResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, pipeline.ConfidenceHigh, env.Confidence)
	require.Contains(t, env.Sources, "leverage.txt")
}

func TestChat_InvalidJSONRejected(t *testing.T) {
	h := newTestHandler(&stubSearcher{}, &stubCompleter{})

	rec := postChat(t, h, `{"query": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_QUERY", decodeError(t, rec).Error.Code)
}

func TestChat_EmptyQueryRejected(t *testing.T) {
	h := newTestHandler(&stubSearcher{}, &stubCompleter{})

	rec := postChat(t, h, `{"query": "   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "EMPTY_QUERY", decodeError(t, rec).Error.Code)
}

func TestChat_OversizedQueryRejected(t *testing.T) {
	h := newTestHandler(&stubSearcher{}, &stubCompleter{})

	rec := postChat(t, h, `{"query": "`+strings.Repeat("a", 600)+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "QUERY_TOO_LONG", decodeError(t, rec).Error.Code)
}

func TestChat_RateLimitedCompletionMapsTo429(t *testing.T) {
	searcher := &stubSearcher{docs: []retrieval.RetrievedDocument{
		{Content: "Spreads from 0.2 pips.", Source: "spreads.txt", Score: 0.8},
		{Content: "Commission-free standard accounts.", Source: "accounts.txt", Score: 0.7},
	}}
	h := newTestHandler(searcher, &stubCompleter{err: completion.ErrRateLimited})

	rec := postChat(t, h, `{"query": "what are your spreads?"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	resp := decodeError(t, rec)
	require.Equal(t, "RATE_LIMIT", resp.Error.Code)
	require.NotContains(t, resp.Error.Message, "rate")
}

func TestChat_AuthFailureMapsToAPIKeyError(t *testing.T) {
	searcher := &stubSearcher{docs: []retrieval.RetrievedDocument{
		{Content: "MT4 and MT5 are supported.", Source: "platforms.txt", Score: 0.8},
		{Content: "WebTrader runs in the browser.", Source: "webtrader.txt", Score: 0.7},
	}}
	h := newTestHandler(searcher, &stubCompleter{err: completion.ErrAuth})

	rec := postChat(t, h, `{"query": "which platforms can I use?"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "API_KEY_ERROR", decodeError(t, rec).Error.Code)
}

func TestHealth_WithoutIndex(t *testing.T) {
	h := newTestHandler(&stubSearcher{}, &stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
	require.False(t, resp.IndexReady)
}

func TestStats_CountsProcessedRequests(t *testing.T) {
	h := newTestHandler(&stubSearcher{}, &stubCompleter{})

	postChat(t, h, `{"query": "hello"}`)
	postChat(t, h, `{"query": "hi there"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(2), resp.Requests.TotalRequests)
	require.Equal(t, int64(2), resp.Requests.ByCategory["greeting"])
}
