package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wordquiz/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func entryAt(ts time.Time, mode model.Mode, accuracy int) model.HistoryEntry {
	return model.HistoryEntry{
		ID:        ts.UnixMilli(),
		Timestamp: ts,
		Mode:      mode,
		WordCount: 5,
		Correct:   4,
		Incorrect: 1,
		Accuracy:  accuracy,
	}
}

func TestStoreAppendAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := entryAt(base.Add(time.Duration(i)*time.Minute), model.ModeListenSpell, 80+i)
		if err := store.Append(ctx, entry); err != nil {
			t.Fatalf("failed to append entry: %v", err)
		}
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Newest first.
	if !entries[0].Timestamp.After(entries[2].Timestamp) {
		t.Fatalf("entries should be ordered newest first: %v", entries)
	}
	if entries[0].Accuracy != 82 {
		t.Fatalf("unexpected newest entry: %+v", entries[0])
	}
	if entries[0].Mode != model.ModeListenSpell {
		t.Fatalf("mode did not round-trip: %+v", entries[0])
	}
}

func TestStoreListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, entryAt(base.Add(time.Duration(i)*time.Minute), model.ModeFillBlank, 90)); err != nil {
			t.Fatalf("failed to append entry: %v", err)
		}
	}
	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries with limit, got %d", len(entries))
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Append(ctx, entryAt(time.Now(), model.ModeLetterPuzzle, 100)); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("failed to clear history: %v", err)
	}
	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("failed to list after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history after clear, got %d entries", len(entries))
	}
}

func TestNewEntryCopiesStats(t *testing.T) {
	stats := model.SessionStats{
		Total: 5, Correct: 5, Incorrect: 0, Accuracy: 100,
		WithHints: 1, TotalHintsUsed: 2, TimeoutCount: 1,
	}
	entry := NewEntry(model.ModeListenSpell, stats)
	if entry.ID == 0 || entry.Timestamp.IsZero() {
		t.Fatalf("entry should be stamped at creation: %+v", entry)
	}
	if entry.WordCount != 5 || entry.Correct != 5 || entry.Accuracy != 100 ||
		entry.WithHints != 1 || entry.TotalHintsUsed != 2 || entry.TimeoutCount != 1 {
		t.Fatalf("entry fields should match stats: %+v", entry)
	}
}
