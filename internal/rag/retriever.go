package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks bookchat/internal/rag Retriever

import (
	"context"
	"log/slog"
	"strings"

	"bookchat/internal/contextutil"
	"bookchat/internal/embedding"
	"bookchat/internal/vectorstore"
)

const (
	defaultTopK = 5
	maxTopK     = 20
)

// Retriever finds the chunks most relevant to a query.
type Retriever interface {
	// Retrieve embeds the query, searches the vector index and returns
	// normalized hits in descending score order. A failing or empty index
	// yields an empty list, not an error; only an invalid query is an error.
	Retrieve(ctx context.Context, query string, topK int, filters map[string]any) ([]SearchHit, error)
}

// retriever implements Retriever on top of the embedder and vector store
// collaborators.
type retriever struct {
	embedder   embedding.Embedder
	store      vectorstore.VectorStore
	collection string
	logger     *slog.Logger
}

// NewRetriever creates a Retriever searching the given collection.
func NewRetriever(embedder embedding.Embedder, store vectorstore.VectorStore, collection string) Retriever {
	return &retriever{
		embedder:   embedder,
		store:      store,
		collection: collection,
		logger:     slog.Default(),
	}
}

// Retrieve embeds the query with the query role and searches the index.
func (r *retriever) Retrieve(ctx context.Context, query string, topK int, filters map[string]any) ([]SearchHit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	// The query role is deliberate: asymmetric embedding models place
	// queries and documents differently, and chunks were embedded with the
	// document role at ingestion time.
	vectors, err := r.embedder.Embed(ctx, []string{query}, embedding.RoleQuery)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query, returning no results", "error", err)
		return []SearchHit{}, nil
	}
	if len(vectors) == 0 {
		logger.ErrorContext(ctx, "embedder returned no vector for query")
		return []SearchHit{}, nil
	}

	results, err := r.store.Search(ctx, r.collection, vectors[0], topK, filters)
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed, returning no results", "error", err)
		return []SearchHit{}, nil
	}

	hits := make([]SearchHit, 0, len(results))
	for _, result := range results {
		text, _ := result.Meta["text"].(string)
		if text == "" {
			logger.WarnContext(ctx, "dropping hit without text payload", "point_id", result.PointID)
			continue
		}
		sourceID, _ := result.Meta["source_id"].(string)

		hits = append(hits, SearchHit{
			ChunkID:  result.PointID,
			SourceID: sourceID,
			Text:     text,
			Score:    result.Score,
			Metadata: result.Meta,
		})
	}

	logger.InfoContext(ctx, "retrieval completed", "requested", topK, "hits", len(hits))
	return hits, nil
}
