// Package history persists what has been read aloud.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Entry is one persisted reading.
type Entry struct {
	ID        int64
	Title     string
	Content   string
	SourceURL string
	CreatedAt time.Time
}

// Store is a SQLite-backed history. Entries are unique by content text:
// saving the same text twice keeps the first write.
type Store struct {
	db    *sql.DB
	log   *logrus.Entry
	clock func() time.Time
}

// Open initializes the store at path, creating the file and schema as
// needed.
func Open(ctx context.Context, path string, log *logrus.Entry) (*Store, error) {
	if log == nil {
		log = logrus.WithField("component", "history")
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, log: log, clock: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    content_hash TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    source_url TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at DESC);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save records a reading. Duplicate content is ignored: the first write
// wins. Empty content is never stored.
func (s *Store) Save(ctx context.Context, content, sourceURL string) error {
	if content == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO history(content_hash, title, content, source_url, created_at)
		 VALUES(?, ?, ?, ?, ?)`,
		contentHash(content), deriveTitle(content), content, sourceURL,
		s.clock().UTC().Format(time.RFC3339Nano))
	return err
}

// LoadAll returns every entry, most recent first.
func (s *Store) LoadAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, source_url, created_at
		 FROM history ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.SourceURL, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes one entry by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	return err
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", sum)
}

const titleRuneLimit = 50

func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleRuneLimit {
		return content
	}
	return string(runes[:titleRuneLimit]) + "…"
}
