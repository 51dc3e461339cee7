package embedding

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks bookchat/internal/embedding Embedder

import "context"

// Role selects the embedding input type. Asymmetric embedding models produce
// different vectors for stored documents and search queries, so the role used
// at ingestion time must differ from the one used at query time.
type Role string

const (
	// RoleDocument embeds text that will be stored in the vector index.
	RoleDocument Role = "document"
	// RoleQuery embeds a search query.
	RoleQuery Role = "query"
)

// Embedder converts texts into fixed-length vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order. All vectors
	// have the deployment's configured dimension.
	Embed(ctx context.Context, texts []string, role Role) ([][]float32, error)
}
