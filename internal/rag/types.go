package rag

// Mode selects what content a query is answered from.
type Mode string

const (
	// ModeFullBook answers from the whole indexed corpus via retrieval.
	ModeFullBook Mode = "full_book"
	// ModeSelectedText answers from caller-supplied text, bypassing retrieval.
	ModeSelectedText Mode = "selected_text"
)

// Request represents a chat query against the pipeline.
type Request struct {
	// Query is the user's question.
	Query string
	// Mode selects full-book retrieval or the selected-text bypass.
	// Empty defaults to full-book.
	Mode Mode
	// SelectedText is the override context for selected-text mode.
	SelectedText string
	// TopK optionally overrides the configured result count.
	TopK int
	// MaxContextLength optionally overrides the configured context budget (runes).
	MaxContextLength int
	// Filters restricts retrieval by payload fields. A scalar value requires
	// an exact match, a slice value matches any element.
	Filters map[string]any
}

// SearchHit is a scored retrieval result. Hit lists are ordered by descending
// score as returned by the vector index; nothing downstream reorders them.
// Hits are ephemeral: created per query, never persisted.
type SearchHit struct {
	ChunkID  string
	SourceID string
	Text     string
	Score    float32
	Metadata map[string]any
}

// AssembledContext is the bounded text blob sent to the generator.
type AssembledContext struct {
	// Text is the concatenation of selected hit texts in rank order,
	// separated by a blank line. Never longer than the budget.
	Text string
	// IncludedHitIDs lists the hits that contributed text, in rank order.
	IncludedHitIDs []string
	// Truncated is true if the last included hit was cut short or any hit
	// was dropped for exceeding the remaining budget.
	Truncated bool
}

// Citation points at a chunk that backed the answer.
type Citation struct {
	ChunkID        string `json:"chunk_id"`
	SourceID       string `json:"source_id"`
	Chapter        string `json:"chapter,omitempty"`
	Section        string `json:"section,omitempty"`
	ParagraphIndex int    `json:"paragraph_index"`
}

// ChatResponse is the final artifact returned to the caller. It is created
// once per query and handed to the persistence collaborator by the caller;
// the pipeline never reads it back.
type ChatResponse struct {
	Answer     string     `json:"answer"`
	Citations  []Citation `json:"citations"`
	Confidence float64    `json:"confidence"`
	IsFallback bool       `json:"is_fallback"`
	BasedOn    Mode       `json:"based_on"`
}
