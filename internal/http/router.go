package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bookchat/internal/handlers"
	"bookchat/internal/rag"
	"bookchat/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Pipeline   rag.Pipeline
	Ingester   handlers.Ingester
	Turns      storage.TurnStore
	Checker    handlers.CollectionChecker
	Collection string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.Pipeline, deps.Turns)
	documentsHandler := handlers.NewDocumentsHandler(deps.Ingester)
	historyHandler := handlers.NewHistoryHandler(deps.Turns)
	healthHandler := handlers.NewHealthHandler(deps.Checker, deps.Collection)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Post("/documents", documentsHandler.Ingest)
		r.Delete("/documents/{sourceID}", documentsHandler.Delete)
		r.Method(http.MethodGet, "/history", historyHandler)
	})
	r.Method(http.MethodGet, "/api/health", healthHandler)

	return r
}
