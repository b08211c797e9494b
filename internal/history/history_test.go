package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return now }
	if err := s.Save(ctx, "first text", "https://example.com/a"); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.clock = func() time.Time { return now.Add(time.Minute) }
	if err := s.Save(ctx, "second text", ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// most recent first
	if entries[0].Content != "second text" || entries[1].Content != "first text" {
		t.Fatalf("order wrong: %q, %q", entries[0].Content, entries[1].Content)
	}
	if entries[1].SourceURL != "https://example.com/a" {
		t.Fatalf("source url = %q", entries[1].SourceURL)
	}
	if !entries[1].CreatedAt.Equal(now) {
		t.Fatalf("created at = %v", entries[1].CreatedAt)
	}
}

func TestSaveDeduplicatesByContentFirstWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "same text", "https://first.example"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "same text", "https://second.example"); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].SourceURL != "https://first.example" {
		t.Fatalf("first write did not win: %q", entries[0].SourceURL)
	}
}

func TestSaveEmptyContentIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, "", "https://example.com"); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, _ := s.LoadAll(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d", len(entries))
	}
}

func TestTitleDerivation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	long := strings.Repeat("x", 80)
	if err := s.Save(ctx, long, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, _ := s.LoadAll(ctx)
	if want := strings.Repeat("x", 50) + "…"; entries[0].Title != want {
		t.Fatalf("title = %q, want %q", entries[0].Title, want)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, "a", "")
	s.Save(ctx, "b", "")
	s.Save(ctx, "c", "")

	entries, _ := s.LoadAll(ctx)
	if len(entries) != 3 {
		t.Fatalf("expected 3, got %d", len(entries))
	}

	if err := s.Delete(ctx, entries[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	entries, _ = s.LoadAll(ctx)
	if len(entries) != 2 {
		t.Fatalf("expected 2 after delete, got %d", len(entries))
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, _ = s.LoadAll(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(entries))
	}
}
