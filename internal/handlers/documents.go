package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingester.go -package=mocks bookchat/internal/handlers Ingester

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookchat/internal/contextutil"
	"bookchat/internal/ingest"
)

// Ingester indexes and removes source documents.
type Ingester interface {
	IngestText(ctx context.Context, doc ingest.Document) (int, error)
	IngestMarkdown(ctx context.Context, sourceID string, content []byte, metadata map[string]any) (int, error)
	DeleteSource(ctx context.Context, sourceID string) error
}

// DocumentsHandler manages indexed source documents over HTTP.
type DocumentsHandler struct {
	ingester Ingester
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(ingester Ingester) *DocumentsHandler {
	return &DocumentsHandler{ingester: ingester}
}

// IngestRequest represents the HTTP request payload for document ingestion.
type IngestRequest struct {
	SourceID string `json:"source_id"`
	// Format is "text" or "markdown". Defaults to text.
	Format   string         `json:"format,omitempty"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// IngestResponse represents the HTTP response payload for document ingestion.
type IngestResponse struct {
	SourceID string `json:"source_id"`
	Chunks   int    `json:"chunks"`
}

// Ingest handles POST requests indexing a document.
func (h *DocumentsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "source_id is required")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	var (
		chunks int
		err    error
	)
	switch req.Format {
	case "", "text":
		chunks, err = h.ingester.IngestText(ctx, ingest.Document{
			SourceID: req.SourceID,
			Text:     req.Content,
			Metadata: req.Metadata,
		})
	case "markdown":
		chunks, err = h.ingester.IngestMarkdown(ctx, req.SourceID, []byte(req.Content), req.Metadata)
	default:
		writeError(w, http.StatusBadRequest, "Unknown format")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to ingest document", "source_id", req.SourceID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to ingest document")
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		SourceID: req.SourceID,
		Chunks:   chunks,
	})
}

// Delete handles DELETE requests removing all chunks of a source.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	sourceID := chi.URLParam(r, "sourceID")
	if sourceID == "" {
		writeError(w, http.StatusBadRequest, "source id is required")
		return
	}

	if err := h.ingester.DeleteSource(ctx, sourceID); err != nil {
		logger.ErrorContext(ctx, "failed to delete document", "source_id", sourceID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
