package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"bookchat/internal/chunker"
	"bookchat/internal/config"
	"bookchat/internal/embedding"
	"bookchat/internal/http"
	"bookchat/internal/ingest"
	"bookchat/internal/llm"
	"bookchat/internal/rag"
	"bookchat/internal/storage"
	"bookchat/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	turnRepo := storage.NewTurnRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate the embedding client vector size (fail-fast)
	embedder := embedding.NewCohereClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	if _, err := embedder.Embed(ctx, []string{"test"}, embedding.RoleDocument); err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.QdrantVectorSize)

	// Create the ingestion pipeline
	textChunker, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("Failed to create chunker: %v", err)
	}
	ingestPipeline := ingest.NewPipeline(textChunker, embedder, vectorStore, cfg.QdrantCollection)

	// Create the answering pipeline
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	retriever := rag.NewRetriever(embedder, vectorStore, cfg.QdrantCollection)
	pipeline, err := rag.NewPipeline(retriever, llmClient, rag.Options{
		TopK:             cfg.TopK,
		MaxContextLength: cfg.MaxContextLength,
		ConfidenceScale:  cfg.ConfidenceScale,
		Timeout:          cfg.RequestTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create answer pipeline: %v", err)
	}
	slog.Info("Answer pipeline initialized", "top_k", cfg.TopK, "max_context_length", cfg.MaxContextLength)

	router := http.NewRouter(&http.Deps{
		Pipeline:   pipeline,
		Ingester:   ingestPipeline,
		Turns:      turnRepo,
		Checker:    vectorStore,
		Collection: cfg.QdrantCollection,
	})

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
