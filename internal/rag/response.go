package rag

// assembleResponse combines the generated answer with retrieval provenance.
// usedHits are the hits that contributed context text, in rank order;
// citations are a 1:1 projection of them.
func assembleResponse(mode Mode, answer string, usedHits []SearchHit, confidenceScale float64) ChatResponse {
	citations := make([]Citation, 0, len(usedHits))
	for _, hit := range usedHits {
		citations = append(citations, Citation{
			ChunkID:        hit.ChunkID,
			SourceID:       hit.SourceID,
			Chapter:        metaString(hit.Metadata, "chapter"),
			Section:        metaString(hit.Metadata, "section"),
			ParagraphIndex: metaInt(hit.Metadata, "paragraph_index"),
		})
	}

	confidence := 0.0
	switch {
	case mode == ModeSelectedText:
		// The context is the caller's exact text, not an inference.
		confidence = 1.0
	case len(usedHits) > 0:
		sum := 0.0
		for _, hit := range usedHits {
			sum += float64(hit.Score)
		}
		confidence = clamp01(sum / float64(len(usedHits)) / confidenceScale)
	}

	// A request is a fallback when no retrieval happened (selected-text mode)
	// or when the generator independently produced the fallback sentence.
	isFallback := mode == ModeSelectedText || answer == FallbackAnswer

	return ChatResponse{
		Answer:     answer,
		Citations:  citations,
		Confidence: confidence,
		IsFallback: isFallback,
		BasedOn:    mode,
	}
}

// fallbackResponse is the deterministic response used when retrieval found
// nothing or a collaborator failed.
func fallbackResponse(mode Mode) ChatResponse {
	return ChatResponse{
		Answer:     FallbackAnswer,
		Citations:  []Citation{},
		Confidence: 0.0,
		IsFallback: true,
		BasedOn:    mode,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// metaString reads a string field from hit metadata.
func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	s, _ := meta[key].(string)
	return s
}

// metaInt reads an integer field from hit metadata. Vector store payloads
// decode integers as int64, JSON decodes them as float64; accept both.
func metaInt(meta map[string]any, key string) int {
	if meta == nil {
		return 0
	}
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
