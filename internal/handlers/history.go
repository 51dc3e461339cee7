package handlers

import (
	"net/http"
	"strconv"
	"time"

	"bookchat/internal/contextutil"
	"bookchat/internal/storage"
)

// HistoryHandler serves recent chat turns.
type HistoryHandler struct {
	turns storage.TurnStore
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(turns storage.TurnStore) *HistoryHandler {
	return &HistoryHandler{turns: turns}
}

// HistoryTurn represents one answered query in the history response.
type HistoryTurn struct {
	ID            string  `json:"id"`
	Query         string  `json:"query"`
	Mode          string  `json:"mode"`
	Answer        string  `json:"answer"`
	Confidence    float64 `json:"confidence"`
	IsFallback    bool    `json:"is_fallback"`
	CitationCount int     `json:"citation_count"`
	ProcessingMS  int64   `json:"processing_ms"`
	CreatedAt     string  `json:"created_at"`
}

// HistoryResponse represents the history response payload.
type HistoryResponse struct {
	Turns []HistoryTurn `json:"turns"`
}

// ServeHTTP handles GET requests for recent chat turns.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	turns, err := h.turns.RecentTurns(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load chat history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	resp := HistoryResponse{Turns: make([]HistoryTurn, 0, len(turns))}
	for _, turn := range turns {
		resp.Turns = append(resp.Turns, HistoryTurn{
			ID:            turn.ID,
			Query:         turn.Query,
			Mode:          turn.Mode,
			Answer:        turn.Answer,
			Confidence:    turn.Confidence,
			IsFallback:    turn.IsFallback,
			CitationCount: turn.CitationCount,
			ProcessingMS:  turn.ProcessingMS,
			CreatedAt:     turn.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
