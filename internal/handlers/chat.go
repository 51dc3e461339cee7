package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bookchat/internal/contextutil"
	"bookchat/internal/rag"
	"bookchat/internal/storage"
)

// ChatHandler answers book questions over HTTP.
type ChatHandler struct {
	pipeline rag.Pipeline
	turns    storage.TurnStore
}

// NewChatHandler creates a new ChatHandler. turns may be nil to disable
// turn logging.
func NewChatHandler(pipeline rag.Pipeline, turns storage.TurnStore) *ChatHandler {
	return &ChatHandler{
		pipeline: pipeline,
		turns:    turns,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Query            string         `json:"query"`
	Mode             string         `json:"mode,omitempty"`
	SelectedText     string         `json:"selected_text,omitempty"`
	TopK             int            `json:"top_k,omitempty"`
	MaxContextLength int            `json:"max_context_length,omitempty"`
	Filters          map[string]any `json:"filters,omitempty"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	ResponseID string         `json:"response_id"`
	Answer     string         `json:"answer"`
	Citations  []rag.Citation `json:"citations"`
	Confidence float64        `json:"confidence"`
	IsFallback bool           `json:"is_fallback"`
	BasedOn    string         `json:"based_on"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	start := time.Now()
	answer, err := h.pipeline.AnswerQuery(ctx, rag.Request{
		Query:            req.Query,
		Mode:             rag.Mode(req.Mode),
		SelectedText:     req.SelectedText,
		TopK:             req.TopK,
		MaxContextLength: req.MaxContextLength,
		Filters:          req.Filters,
	})
	if err != nil {
		h.handlePipelineError(w, r, err)
		return
	}

	h.logTurn(r, req, answer, time.Since(start))

	writeJSON(w, http.StatusOK, ChatResponse{
		ResponseID: uuid.New().String(),
		Answer:     answer.Answer,
		Citations:  answer.Citations,
		Confidence: answer.Confidence,
		IsFallback: answer.IsFallback,
		BasedOn:    string(answer.BasedOn),
	})
}

// logTurn persists the answered query. Failures are logged, never surfaced:
// history is not worth failing a successful answer over.
func (h *ChatHandler) logTurn(r *http.Request, req ChatRequest, answer rag.ChatResponse, elapsed time.Duration) {
	if h.turns == nil {
		return
	}
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	turn := &storage.Turn{
		Query:         req.Query,
		Mode:          string(answer.BasedOn),
		Answer:        answer.Answer,
		Confidence:    answer.Confidence,
		IsFallback:    answer.IsFallback,
		CitationCount: len(answer.Citations),
		ProcessingMS:  elapsed.Milliseconds(),
	}
	if err := h.turns.LogTurn(ctx, turn); err != nil {
		logger.WarnContext(ctx, "failed to log chat turn", "error", err)
	}
}

// handlePipelineError maps pipeline errors to HTTP status codes.
func (h *ChatHandler) handlePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, rag.ErrInvalidQuery):
		logger.WarnContext(ctx, "invalid query", "error", err)
		writeError(w, http.StatusBadRequest, "Query must not be empty")
	case errors.Is(err, rag.ErrMissingSelectedText):
		logger.WarnContext(ctx, "missing selected text", "error", err)
		writeError(w, http.StatusBadRequest, "Selected text mode requires selected_text")
	case errors.Is(err, rag.ErrUnknownMode):
		logger.WarnContext(ctx, "unknown mode", "error", err)
		writeError(w, http.StatusBadRequest, "Unknown mode")
	default:
		logger.ErrorContext(ctx, "failed to answer query", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to answer query")
	}
}
