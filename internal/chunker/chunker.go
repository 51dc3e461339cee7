package chunker

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Chunk represents a contiguous span of source text prepared for embedding.
// Chunks are created at ingestion time, embedded, stored in the vector index,
// and never mutated afterwards.
type Chunk struct {
	ID       string         // deterministic UUID derived from source, ordinal and text
	SourceID string         // owning document identifier
	Ordinal  int            // zero-based position among sibling chunks
	Text     string         // raw chunk content, always non-empty
	Metadata map[string]any // caller-supplied fields (chapter, section, ...)
}

// Chunker splits text into bounded-size, overlapping segments.
// Sizes are measured in runes; the context assembly budget uses the same unit.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. size is the maximum chunk length in runes and
// overlap the number of trailing runes carried into the next chunk.
// overlap must be smaller than size or the window cannot advance.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than 0, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split splits text into chunks of at most the configured size, consecutive
// chunks sharing the configured overlap. The last chunk may be shorter.
// Empty input produces no chunks. The output is deterministic: the same text
// and parameters always yield the same chunk sequence, including IDs.
//
// metadata is copied into every chunk; the map may be nil.
func (c *Chunker) Split(sourceID, text string, metadata map[string]any) []Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []Chunk
	start := 0

	for start < len(runes) {
		end := start + c.size

		if end >= len(runes) {
			chunks = append(chunks, c.newChunk(sourceID, len(chunks), string(runes[start:]), metadata))
			break
		}

		chunks = append(chunks, c.newChunk(sourceID, len(chunks), string(runes[start:end]), metadata))
		start = end - c.overlap
	}

	return chunks
}

// newChunk builds a chunk with a deterministic ID and its own metadata copy.
func (c *Chunker) newChunk(sourceID string, ordinal int, text string, metadata map[string]any) Chunk {
	meta := make(map[string]any, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	return Chunk{
		ID:       ID(sourceID, ordinal, text),
		SourceID: sourceID,
		Ordinal:  ordinal,
		Text:     text,
		Metadata: meta,
	}
}

// ID derives a UUIDv5 from the chunk identity. Qdrant point IDs must be
// UUIDs, and a name-based UUID keeps the chunk sequence reproducible for the
// same input. IDs still change whenever the text or position changes, so
// stability across re-ingestion of edited documents is not guaranteed.
// Callers that renumber chunks after splitting use it to recompute IDs.
func ID(sourceID string, ordinal int, text string) string {
	name := sourceID + "\x00" + strconv.Itoa(ordinal) + "\x00" + text
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
