package storage

import (
	"context"
	"database/sql"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestLogTurn_GeneratesID(t *testing.T) {
	repo := NewTurnRepo(newTestDB(t))

	turn := &Turn{
		Query:         "who is the villain",
		Mode:          "full_book",
		Answer:        "The cloaked figure.",
		Confidence:    0.7,
		CitationCount: 3,
		ProcessingMS:  120,
	}
	if err := repo.LogTurn(context.Background(), turn); err != nil {
		t.Fatalf("LogTurn() error = %v", err)
	}
	if turn.ID == "" {
		t.Error("LogTurn() did not assign an ID")
	}
}

func TestLogTurn_DuplicateID(t *testing.T) {
	repo := NewTurnRepo(newTestDB(t))

	turn := &Turn{ID: "turn-1", Query: "q", Mode: "full_book", Answer: "a"}
	if err := repo.LogTurn(context.Background(), turn); err != nil {
		t.Fatalf("LogTurn() error = %v", err)
	}
	if err := repo.LogTurn(context.Background(), turn); err == nil {
		t.Error("LogTurn() with duplicate ID error = nil, want constraint error")
	}
}

func TestRecentTurns(t *testing.T) {
	repo := NewTurnRepo(newTestDB(t))
	ctx := context.Background()

	turns := []*Turn{
		{ID: "turn-1", Query: "first", Mode: "full_book", Answer: "a1", Confidence: 0.5, CitationCount: 1, ProcessingMS: 10},
		{ID: "turn-2", Query: "second", Mode: "selected_text", Answer: "a2", Confidence: 1.0, IsFallback: true, ProcessingMS: 20},
		{ID: "turn-3", Query: "third", Mode: "full_book", Answer: "a3", Confidence: 0.9, CitationCount: 5, ProcessingMS: 30},
	}
	for _, turn := range turns {
		if err := repo.LogTurn(ctx, turn); err != nil {
			t.Fatalf("LogTurn(%s) error = %v", turn.ID, err)
		}
	}

	got, err := repo.RecentTurns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentTurns() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	// All inserts share one CURRENT_TIMESTAMP second; order within it is by id.
	for _, turn := range got {
		if turn.CreatedAt.IsZero() {
			t.Errorf("turn %s has zero CreatedAt", turn.ID)
		}
	}

	all, err := repo.RecentTurns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentTurns() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	byID := make(map[string]Turn, len(all))
	for _, turn := range all {
		byID[turn.ID] = turn
	}
	second := byID["turn-2"]
	if second.Query != "second" || second.Mode != "selected_text" || second.Answer != "a2" {
		t.Errorf("turn-2 = %+v", second)
	}
	if !second.IsFallback {
		t.Error("turn-2 IsFallback = false, want true")
	}
	if second.Confidence != 1.0 || second.ProcessingMS != 20 {
		t.Errorf("turn-2 numbers = %v/%v", second.Confidence, second.ProcessingMS)
	}
}

func TestRecentTurns_DefaultLimit(t *testing.T) {
	repo := NewTurnRepo(newTestDB(t))

	got, err := repo.RecentTurns(context.Background(), 0)
	if err != nil {
		t.Fatalf("RecentTurns() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0 on empty table", len(got))
	}
}
