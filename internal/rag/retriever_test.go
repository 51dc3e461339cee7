package rag_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"bookchat/internal/embedding"
	embedmocks "bookchat/internal/embedding/mocks"
	"bookchat/internal/rag"
	"bookchat/internal/vectorstore"
	storemocks "bookchat/internal/vectorstore/mocks"
)

const testCollection = "book_chunks"

func TestRetrieve_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "whitespace only", query: "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			embedder := embedmocks.NewMockEmbedder(ctrl)
			store := storemocks.NewMockVectorStore(ctrl)
			// No collaborator calls expected for an invalid query.

			r := rag.NewRetriever(embedder, store, testCollection)
			_, err := r.Retrieve(context.Background(), tt.query, 5, nil)
			if !errors.Is(err, rag.ErrInvalidQuery) {
				t.Errorf("Retrieve() error = %v, want ErrInvalidQuery", err)
			}
		})
	}
}

func TestRetrieve_UsesQueryRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := embedmocks.NewMockEmbedder(ctrl)
	store := storemocks.NewMockVectorStore(ctrl)

	queryVec := []float32{0.1, 0.2, 0.3}
	embedder.EXPECT().
		Embed(gomock.Any(), []string{"what is chapter one about"}, embedding.RoleQuery).
		Return([][]float32{queryVec}, nil)
	store.EXPECT().
		Search(gomock.Any(), testCollection, queryVec, 5, nil).
		Return([]vectorstore.SearchResult{}, nil)

	r := rag.NewRetriever(embedder, store, testCollection)
	hits, err := r.Retrieve(context.Background(), "  what is chapter one about  ", 5, nil)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want empty", hits)
	}
}

func TestRetrieve_TopKDefaultAndCap(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		wantK     int
	}{
		{name: "zero gets default", requested: 0, wantK: 5},
		{name: "negative gets default", requested: -3, wantK: 5},
		{name: "in range passes through", requested: 12, wantK: 12},
		{name: "above cap is clamped", requested: 100, wantK: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			embedder := embedmocks.NewMockEmbedder(ctrl)
			store := storemocks.NewMockVectorStore(ctrl)

			embedder.EXPECT().
				Embed(gomock.Any(), gomock.Any(), embedding.RoleQuery).
				Return([][]float32{{0.5}}, nil)
			store.EXPECT().
				Search(gomock.Any(), testCollection, gomock.Any(), tt.wantK, nil).
				Return([]vectorstore.SearchResult{}, nil)

			r := rag.NewRetriever(embedder, store, testCollection)
			if _, err := r.Retrieve(context.Background(), "query", tt.requested, nil); err != nil {
				t.Fatalf("Retrieve() error = %v", err)
			}
		})
	}
}

func TestRetrieve_EmbedderFailureYieldsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := embedmocks.NewMockEmbedder(ctrl)
	store := storemocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().
		Embed(gomock.Any(), gomock.Any(), embedding.RoleQuery).
		Return(nil, errors.New("embedding service unavailable"))
	// Search must not be called after an embedding failure.

	r := rag.NewRetriever(embedder, store, testCollection)
	hits, err := r.Retrieve(context.Background(), "query", 5, nil)
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want nil", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Errorf("hits = %v, want empty non-nil slice", hits)
	}
}

func TestRetrieve_SearchFailureYieldsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := embedmocks.NewMockEmbedder(ctrl)
	store := storemocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().
		Embed(gomock.Any(), gomock.Any(), embedding.RoleQuery).
		Return([][]float32{{0.5}}, nil)
	store.EXPECT().
		Search(gomock.Any(), testCollection, gomock.Any(), 5, nil).
		Return(nil, errors.New("qdrant unreachable"))

	r := rag.NewRetriever(embedder, store, testCollection)
	hits, err := r.Retrieve(context.Background(), "query", 5, nil)
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want nil", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Errorf("hits = %v, want empty non-nil slice", hits)
	}
}

func TestRetrieve_NormalizesHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := embedmocks.NewMockEmbedder(ctrl)
	store := storemocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().
		Embed(gomock.Any(), gomock.Any(), embedding.RoleQuery).
		Return([][]float32{{0.5}}, nil)
	store.EXPECT().
		Search(gomock.Any(), testCollection, gomock.Any(), 5, gomock.Any()).
		Return([]vectorstore.SearchResult{
			{
				PointID: "chunk-1",
				Score:   0.92,
				Meta: map[string]any{
					"text":      "The hero departs at dawn.",
					"source_id": "book-1",
					"chapter":   "Chapter 1",
				},
			},
			{
				// Missing text payload: dropped, not surfaced as an error.
				PointID: "chunk-2",
				Score:   0.81,
				Meta:    map[string]any{"source_id": "book-1"},
			},
			{
				PointID: "chunk-3",
				Score:   0.74,
				Meta: map[string]any{
					"text":      "By nightfall the road forked.",
					"source_id": "book-1",
				},
			},
		}, nil)

	r := rag.NewRetriever(embedder, store, testCollection)
	hits, err := r.Retrieve(context.Background(), "query", 5, map[string]any{"chapter": "Chapter 1"})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	first := hits[0]
	if first.ChunkID != "chunk-1" || first.SourceID != "book-1" {
		t.Errorf("first hit identity = %q/%q, want chunk-1/book-1", first.ChunkID, first.SourceID)
	}
	if first.Text != "The hero departs at dawn." {
		t.Errorf("first hit text = %q", first.Text)
	}
	if first.Score != 0.92 {
		t.Errorf("first hit score = %v, want 0.92", first.Score)
	}
	if first.Metadata["chapter"] != "Chapter 1" {
		t.Errorf("first hit metadata chapter = %v", first.Metadata["chapter"])
	}
	if hits[1].ChunkID != "chunk-3" {
		t.Errorf("second hit = %q, want chunk-3", hits[1].ChunkID)
	}
}
