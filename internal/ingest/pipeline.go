package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bookchat/internal/chunker"
	"bookchat/internal/contextutil"
	"bookchat/internal/embedding"
	"bookchat/internal/vectorstore"
)

// embedBatchSize bounds the number of texts per embedding request.
const embedBatchSize = 96

// Document is a piece of source material to index.
type Document struct {
	SourceID string
	Text     string
	// Metadata is attached to every chunk of the document.
	Metadata map[string]any
}

// Pipeline turns source documents into embedded chunks in the vector index.
// Ingesting a source replaces whatever was previously indexed under its ID.
type Pipeline struct {
	chunker    *chunker.Chunker
	embedder   embedding.Embedder
	store      vectorstore.VectorStore
	collection string
	logger     *slog.Logger
}

// NewPipeline creates an ingestion pipeline writing to the given collection.
func NewPipeline(c *chunker.Chunker, embedder embedding.Embedder, store vectorstore.VectorStore, collection string) *Pipeline {
	return &Pipeline{
		chunker:    c,
		embedder:   embedder,
		store:      store,
		collection: collection,
		logger:     slog.Default(),
	}
}

// IngestText chunks and indexes a plain-text document.
// It returns the number of chunks indexed.
func (p *Pipeline) IngestText(ctx context.Context, doc Document) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(doc.SourceID) == "" {
		return 0, fmt.Errorf("source id must not be empty")
	}
	if strings.TrimSpace(doc.Text) == "" {
		return 0, fmt.Errorf("document text must not be empty")
	}

	chunks := p.chunker.Split(doc.SourceID, doc.Text, doc.Metadata)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "document produced no chunks", "source_id", doc.SourceID)
		return 0, nil
	}

	return len(chunks), p.index(ctx, doc.SourceID, chunks)
}

// IngestMarkdown parses markdown into heading-delimited sections, chunks each
// section and indexes the result. Chunk metadata carries the chapter, section
// and paragraph index the chunk came from, so search filters and citations can
// point back into the document structure.
func (p *Pipeline) IngestMarkdown(ctx context.Context, sourceID string, content []byte, metadata map[string]any) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(sourceID) == "" {
		return 0, fmt.Errorf("source id must not be empty")
	}

	title, sections := ExtractSections(content)
	if len(sections) == 0 {
		logger.WarnContext(ctx, "markdown document has no content", "source_id", sourceID)
		return 0, nil
	}

	var chunks []chunker.Chunk
	for _, section := range sections {
		meta := make(map[string]any, len(metadata)+4)
		for k, v := range metadata {
			meta[k] = v
		}
		meta["chapter"] = section.Chapter
		meta["section"] = section.Section
		if title != "" {
			meta["title"] = title
		}

		sectionChunks := p.chunker.Split(sourceID, section.Text, meta)
		for i := range sectionChunks {
			// Position within the section, before global renumbering.
			sectionChunks[i].Metadata["paragraph_index"] = sectionChunks[i].Ordinal
		}
		logger.DebugContext(ctx, "section chunked", "source_id", sourceID, "section", sectionLabel(section), "chunks", len(sectionChunks))
		chunks = append(chunks, sectionChunks...)
	}

	if len(chunks) == 0 {
		logger.WarnContext(ctx, "markdown document produced no chunks", "source_id", sourceID)
		return 0, nil
	}

	// Renumber across sections so ordinals are document-wide, and rederive
	// the IDs that depend on them.
	for i := range chunks {
		chunks[i].Ordinal = i
		chunks[i].ID = chunker.ID(sourceID, i, chunks[i].Text)
	}

	return len(chunks), p.index(ctx, sourceID, chunks)
}

// DeleteSource removes all indexed chunks of a source.
func (p *Pipeline) DeleteSource(ctx context.Context, sourceID string) error {
	if strings.TrimSpace(sourceID) == "" {
		return fmt.Errorf("source id must not be empty")
	}
	if err := p.store.DeleteBySource(ctx, p.collection, sourceID); err != nil {
		return fmt.Errorf("failed to delete source %s: %w", sourceID, err)
	}
	return nil
}

// index embeds the chunks and replaces the source's points in the index.
func (p *Pipeline) index(ctx context.Context, sourceID string, chunks []chunker.Chunk) error {
	logger := contextutil.LoggerFromContext(ctx)

	// Drop the previous generation first. Chunk IDs depend on text and
	// position, so re-ingesting an edited document would otherwise leave
	// stale points behind.
	if err := p.store.DeleteBySource(ctx, p.collection, sourceID); err != nil {
		logger.WarnContext(ctx, "failed to delete previous chunks, continuing", "source_id", sourceID, "error", err)
	}

	vectors, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return err
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		meta := make(map[string]any, len(chunk.Metadata)+3)
		for k, v := range chunk.Metadata {
			meta[k] = v
		}
		meta["source_id"] = chunk.SourceID
		meta["ordinal"] = chunk.Ordinal
		meta["text"] = chunk.Text

		points[i] = vectorstore.Point{
			ID:   chunk.ID,
			Vec:  vectors[i],
			Meta: meta,
		}
	}

	if err := p.store.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "source indexed", "source_id", sourceID, "chunks", len(chunks))
	return nil
}

// embedChunks embeds chunk texts with the document role, in batches.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []chunker.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		batch, err := p.embedder.Embed(ctx, texts, embedding.RoleDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(batch))
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}
