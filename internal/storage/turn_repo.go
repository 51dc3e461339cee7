package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_turn_store.go -package=mocks bookchat/internal/storage TurnStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// TurnStore defines the interface for chat turn persistence.
type TurnStore interface {
	// LogTurn records an answered query. A missing ID is generated.
	LogTurn(ctx context.Context, turn *Turn) error
	// RecentTurns returns the most recent turns, newest first.
	RecentTurns(ctx context.Context, limit int) ([]Turn, error)
}

// TurnRepo provides chat turn operations backed by SQLite.
// It implements the TurnStore interface.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a new TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// LogTurn records an answered query.
func (r *TurnRepo) LogTurn(ctx context.Context, turn *Turn) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_turns (id, query, mode, answer, confidence, is_fallback, citation_count, processing_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		turn.ID, turn.Query, turn.Mode, turn.Answer, turn.Confidence, turn.IsFallback, turn.CitationCount, turn.ProcessingMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat turn: %w", err)
	}

	return nil
}

// RecentTurns returns the most recent turns, newest first.
func (r *TurnRepo) RecentTurns(ctx context.Context, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, query, mode, answer, confidence, is_fallback, citation_count, processing_ms, created_at
		 FROM chat_turns ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var turn Turn
		var createdAtStr string
		if err := rows.Scan(
			&turn.ID, &turn.Query, &turn.Mode, &turn.Answer,
			&turn.Confidence, &turn.IsFallback, &turn.CitationCount, &turn.ProcessingMS,
			&createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}

		turn.CreatedAt, err = parseSQLiteTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}

		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat turns: %w", err)
	}

	return turns, nil
}

// parseSQLiteTime parses the DATETIME formats SQLite produces.
func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
