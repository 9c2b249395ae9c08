// Package handlers provides HTTP handlers for the support engine API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hantec-labs/support-engine/internal/completion"
	"github.com/hantec-labs/support-engine/internal/observability"
	"github.com/hantec-labs/support-engine/internal/pipeline"
	"github.com/hantec-labs/support-engine/internal/retrieval"
	"github.com/hantec-labs/support-engine/internal/storage"
)

// ChatHandler serves the chat, health and stats endpoints.
type ChatHandler struct {
	logger   *observability.Logger
	pipeline *pipeline.Pipeline
	index    *retrieval.Index
	recorder storage.Recorder
}

// NewChatHandler creates a chat handler.
func NewChatHandler(logger *observability.Logger, p *pipeline.Pipeline, index *retrieval.Index, recorder storage.Recorder) *ChatHandler {
	return &ChatHandler{
		logger:   logger.WithComponent("api"),
		pipeline: p,
		index:    index,
		recorder: recorder,
	}
}

// ChatRequestDTO is the POST /api/chat request body.
type ChatRequestDTO struct {
	Query               string          `json:"query"`
	ConversationHistory []pipeline.Turn `json:"conversationHistory,omitempty"`
	SessionID           string          `json:"sessionId,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.WithContext(ctx)

	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_QUERY", "Request body must be valid JSON with a query field.")
		return
	}

	env, err := h.pipeline.Process(ctx, req.Query, req.ConversationHistory)
	if err != nil {
		status, code, message := mapError(err)
		if env != nil {
			// Downstream failure: the envelope text is the safe
			// user-facing message.
			message = env.Text
		}
		logger.Warn().Err(err).Str("code", code).Msg("Chat request failed")
		h.writeError(w, status, code, message)
		return
	}

	logger.Info().
		Str("category", env.Metadata.Category).
		Str("confidence", string(env.Confidence)).
		Int64("duration_ms", env.Metadata.DurationMs).
		Msg("Chat request processed")

	h.writeJSON(w, http.StatusOK, env)
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyQuery):
		return http.StatusBadRequest, "EMPTY_QUERY", "Query must not be empty."
	case errors.Is(err, pipeline.ErrQueryTooLong):
		return http.StatusBadRequest, "QUERY_TOO_LONG", "Query exceeds the maximum length."
	case errors.Is(err, completion.ErrTimeout):
		return http.StatusGatewayTimeout, "TIMEOUT", "The answer took too long, please try again."
	case errors.Is(err, completion.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMIT", "Too many requests, please try again shortly."
	case errors.Is(err, completion.ErrAuth):
		return http.StatusInternalServerError, "API_KEY_ERROR", "Service misconfiguration, please contact support."
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again."
	}
}

// HealthResponseDTO is the GET /api/chat/health response body.
type HealthResponseDTO struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	IndexReady    bool   `json:"indexReady"`
	DocumentCount int    `json:"documentCount"`
}

// Health handles GET /api/chat/health.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponseDTO{
		Status:  "healthy",
		Service: "support-engine",
	}
	if h.index != nil {
		resp.IndexReady = h.index.Ready()
		resp.DocumentCount = h.index.Size()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// StatsResponseDTO is the GET /api/chat/stats response body.
type StatsResponseDTO struct {
	Requests pipeline.StatsSnapshot `json:"requests"`
	Recorded *storage.Stats         `json:"recorded,omitempty"`
}

// Stats handles GET /api/chat/stats.
func (h *ChatHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponseDTO{Requests: h.pipeline.Counters().Snapshot()}

	if h.recorder != nil {
		recorded, err := h.recorder.Stats(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to load recorded stats")
		} else {
			resp.Recorded = recorded
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}
