package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks bookchat/internal/rag Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_pipeline.go -package=mocks bookchat/internal/rag Pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookchat/internal/contextutil"
)

// FallbackAnswer is the deterministic answer returned when no relevant
// content is available or a collaborator fails.
const FallbackAnswer = "This information is not available in the book."

// answerSystemPrompt instructs the generator to answer strictly from the
// provided content and to produce the fallback sentence otherwise.
const answerSystemPrompt = "You are a helpful book assistant. " +
	"Use ONLY the provided book content to answer the question. " +
	`If the answer is not present in the content, reply exactly: "` + FallbackAnswer + `"`

// Generator produces a natural-language answer from a system and user prompt.
// This interface is defined from the pipeline's perspective (consumer-first).
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Pipeline answers queries against indexed book content.
type Pipeline interface {
	// AnswerQuery runs one query through retrieval, context assembly and
	// generation. It returns an error only for invalid input; collaborator
	// failures degrade to the fallback response so the caller always
	// receives an answer.
	AnswerQuery(ctx context.Context, req Request) (ChatResponse, error)
}

// Options configures a Pipeline.
type Options struct {
	// TopK is the default retrieval result count. Defaults to 5.
	TopK int
	// MaxContextLength is the default context budget in runes. Defaults to 2000.
	MaxContextLength int
	// ConfidenceScale divides the mean hit score before clamping to [0,1].
	// Defaults to 1.0, which suits cosine scores.
	ConfidenceScale float64
	// Timeout bounds retrieval plus generation per request. Zero disables it.
	Timeout time.Duration
}

// pipeline implements Pipeline. It holds no per-request state: one instance
// serves any number of concurrent requests.
type pipeline struct {
	retriever Retriever
	generator Generator
	opts      Options
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline from its collaborators.
// Option violations are configuration errors and fail construction.
func NewPipeline(retriever Retriever, generator Generator, opts Options) (Pipeline, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever must not be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator must not be nil")
	}

	if opts.TopK == 0 {
		opts.TopK = defaultTopK
	}
	if opts.TopK < 0 {
		return nil, fmt.Errorf("top k must be greater than 0, got %d", opts.TopK)
	}
	if opts.MaxContextLength == 0 {
		opts.MaxContextLength = 2000
	}
	if opts.MaxContextLength < 0 {
		return nil, fmt.Errorf("max context length must be greater than 0, got %d", opts.MaxContextLength)
	}
	if opts.ConfidenceScale == 0 {
		opts.ConfidenceScale = 1.0
	}
	if opts.ConfidenceScale < 0 {
		return nil, fmt.Errorf("confidence scale must be greater than 0, got %v", opts.ConfidenceScale)
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %v", opts.Timeout)
	}

	return &pipeline{
		retriever: retriever,
		generator: generator,
		opts:      opts,
		logger:    slog.Default(),
	}, nil
}

// AnswerQuery runs one query through the pipeline.
func (p *pipeline) AnswerQuery(ctx context.Context, req Request) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return ChatResponse{}, ErrInvalidQuery
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	switch req.Mode {
	case ModeSelectedText:
		return p.answerFromSelectedText(ctx, logger, query, req.SelectedText)
	case ModeFullBook, "":
		return p.answerFromBook(ctx, logger, query, req)
	default:
		return ChatResponse{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
}

// answerFromSelectedText answers using the caller's override text verbatim as
// the sole context. Retrieval is never invoked.
func (p *pipeline) answerFromSelectedText(ctx context.Context, logger *slog.Logger, query, selectedText string) (ChatResponse, error) {
	selected := strings.TrimSpace(selectedText)
	if selected == "" {
		return ChatResponse{}, ErrMissingSelectedText
	}

	logger.InfoContext(ctx, "answering from selected text", "query_length", len(query), "selected_length", len(selected))

	answer, err := p.generator.Generate(ctx, answerSystemPrompt, userPrompt(query, selected))
	if err != nil {
		logger.ErrorContext(ctx, "generation failed, returning fallback answer", "error", err)
		answer = FallbackAnswer
	}

	// Selected-text answers cite nothing and carry full confidence: the
	// context is the caller's exact text, not an inference. No retrieval was
	// performed, so the response is flagged as a fallback.
	return assembleResponse(ModeSelectedText, answer, nil, p.opts.ConfidenceScale), nil
}

// answerFromBook runs retrieval, context assembly and generation in order.
func (p *pipeline) answerFromBook(ctx context.Context, logger *slog.Logger, query string, req Request) (ChatResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = p.opts.TopK
	}
	maxContextLength := req.MaxContextLength
	if maxContextLength <= 0 {
		maxContextLength = p.opts.MaxContextLength
	}

	hits, err := p.retriever.Retrieve(ctx, query, topK, req.Filters)
	if err != nil {
		return ChatResponse{}, err
	}

	if len(hits) == 0 {
		logger.InfoContext(ctx, "no relevant chunks retrieved, returning fallback answer")
		return fallbackResponse(ModeFullBook), nil
	}

	assembled := AssembleContext(hits, maxContextLength)
	if assembled.Text == "" {
		logger.WarnContext(ctx, "assembled context is empty, returning fallback answer", "hits", len(hits))
		return fallbackResponse(ModeFullBook), nil
	}

	logger.InfoContext(ctx, "context assembled",
		"hits", len(hits),
		"included", len(assembled.IncludedHitIDs),
		"truncated", assembled.Truncated,
		"context_length", len(assembled.Text),
	)

	answer, err := p.generator.Generate(ctx, answerSystemPrompt, userPrompt(query, assembled.Text))
	if err != nil {
		logger.ErrorContext(ctx, "generation failed, returning fallback answer", "error", err)
		return fallbackResponse(ModeFullBook), nil
	}

	used := hitsByID(hits, assembled.IncludedHitIDs)
	resp := assembleResponse(ModeFullBook, answer, used, p.opts.ConfidenceScale)

	logger.InfoContext(ctx, "query answered",
		"citations", len(resp.Citations),
		"confidence", resp.Confidence,
		"is_fallback", resp.IsFallback,
	)
	return resp, nil
}

// userPrompt builds the user message sent to the generator.
func userPrompt(query, contextText string) string {
	return fmt.Sprintf("CONTEXT:\n%s\n\nQUESTION:\n%s", contextText, query)
}

// hitsByID projects ids back onto their hits, preserving id order.
func hitsByID(hits []SearchHit, ids []string) []SearchHit {
	byID := make(map[string]SearchHit, len(hits))
	for _, hit := range hits {
		byID[hit.ChunkID] = hit
	}

	used := make([]SearchHit, 0, len(ids))
	for _, id := range ids {
		if hit, ok := byID[id]; ok {
			used = append(used, hit)
		}
	}
	return used
}
