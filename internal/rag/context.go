package rag

import (
	"strings"
	"unicode/utf8"
)

// contextSeparator separates chunk texts in the assembled context.
const contextSeparator = "\n\n"

// AssembleContext greedily packs hit texts into a single context string under
// a hard budget of maxContextLength runes. Hits are consumed in the given
// order, so the highest-ranked material is never dropped in favor of
// lower-ranked material, and the result is a prefix of the input order. A hit
// that does not fit whole is truncated to exactly fill the remaining budget,
// after which assembly stops. The separator counts against the budget.
func AssembleContext(hits []SearchHit, maxContextLength int) AssembledContext {
	var out strings.Builder
	var included []string
	truncated := false
	remaining := maxContextLength

	for _, hit := range hits {
		text := strings.TrimSpace(hit.Text)
		if text == "" {
			continue
		}

		sep := ""
		if out.Len() > 0 {
			sep = contextSeparator
		}
		sepLen := utf8.RuneCountInString(sep)
		textLen := utf8.RuneCountInString(text)

		if sepLen+textLen <= remaining {
			out.WriteString(sep)
			out.WriteString(text)
			remaining -= sepLen + textLen
			included = append(included, hit.ChunkID)
			continue
		}

		// Does not fit whole: take a prefix filling the remaining budget,
		// if any of it is left after the separator.
		if avail := remaining - sepLen; avail > 0 {
			runes := []rune(text)
			out.WriteString(sep)
			out.WriteString(string(runes[:avail]))
			remaining = 0
			included = append(included, hit.ChunkID)
		}
		truncated = true
		break
	}

	return AssembledContext{
		Text:           out.String(),
		IncludedHitIDs: included,
		Truncated:      truncated,
	}
}
