// Package cache remembers which sources are already annotated so unchanged files can
// be skipped on the next run.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultPath is the cache location relative to the working directory
const DefaultPath = ".testid/cache.db"

// Entry records the fingerprint of an annotated source
type Entry struct {
	Path      string
	Attribute string
	Hash      uint64 // Fingerprint of the annotated output
	Tags      int
	UpdatedAt time.Time
}

// Store is a sqlite backed annotation cache
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the cache database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("opened annotation cache", "path", path)
	return &Store{db: db}, nil
}

// Lookup returns the entry recorded for path and attribute name
func (s *Store) Lookup(ctx context.Context, path, attribute string) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &Entry{Path: path, Attribute: attribute}
	var hash int64
	var updatedAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT hash, tags, updated_at FROM annotations WHERE path = ? AND attribute = ?`,
		path, attribute,
	).Scan(&hash, &entry.Tags, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up %s: %w", path, err)
	}
	entry.Hash = uint64(hash)
	entry.UpdatedAt = asTime(updatedAt)
	return entry, true, nil
}

// asTime converts a DATETIME column; the driver may return text or time.Time
func asTime(value any) time.Time {
	switch actual := value.(type) {
	case time.Time:
		return actual
	case string:
		if ts, err := time.Parse(time.DateTime, actual); err == nil {
			return ts
		}
	case []byte:
		if ts, err := time.Parse(time.DateTime, string(actual)); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Record upserts an entry
func (s *Store) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO annotations (path, attribute, hash, tags, updated_at) VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT (path, attribute) DO UPDATE SET hash = excluded.hash, tags = excluded.tags, updated_at = excluded.updated_at`,
		entry.Path, entry.Attribute, int64(entry.Hash), entry.Tags,
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", entry.Path, err)
	}
	return nil
}

// Forget removes all entries for path
func (s *Store) Forget(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM annotations WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forgetting %s: %w", path, err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
