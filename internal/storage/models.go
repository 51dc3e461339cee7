package storage

import "time"

// Turn represents one answered query, logged for history and debugging.
type Turn struct {
	ID            string // UUID
	Query         string
	Mode          string // full_book or selected_text
	Answer        string
	Confidence    float64
	IsFallback    bool
	CitationCount int
	ProcessingMS  int64 // wall time spent answering, in milliseconds
	CreatedAt     time.Time
}
