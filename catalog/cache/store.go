// Package cache keeps catalog lookups in a local SQLite database so repeated
// renders of the same releases do not hit the network.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ByLCY/jukestrip/catalog"
)

// Store persists releases keyed by (kind, id, path).
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS releases (
	kind       TEXT    NOT NULL,
	id         INTEGER NOT NULL,
	path       TEXT    NOT NULL,
	payload    TEXT    NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (kind, id, path)
)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	return nil
}

// Get returns the cached release for ref. Entries older than maxAge are
// treated as missing; maxAge <= 0 disables expiry.
func (s *Store) Get(ctx context.Context, ref catalog.Ref, maxAge time.Duration) (catalog.Release, bool, error) {
	var (
		payload   string
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM releases WHERE kind = ? AND id = ? AND path = ?`,
		string(ref.Kind), ref.ID, ref.Path,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Release{}, false, nil
	}
	if err != nil {
		return catalog.Release{}, false, fmt.Errorf("query cache: %w", err)
	}
	if maxAge > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return catalog.Release{}, false, nil
	}
	var rel catalog.Release
	if err := json.Unmarshal([]byte(payload), &rel); err != nil {
		return catalog.Release{}, false, fmt.Errorf("decode cached release: %w", err)
	}
	return rel, true, nil
}

// Put stores rel under ref, replacing any previous entry.
func (s *Store) Put(ctx context.Context, ref catalog.Ref, rel catalog.Release) error {
	payload, err := json.Marshal(rel)
	if err != nil {
		return fmt.Errorf("encode release: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO releases (kind, id, path, payload, fetched_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (kind, id, path) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		string(ref.Kind), ref.ID, ref.Path, string(payload), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Purge removes every cached entry and reports how many were deleted.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM releases`)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM releases`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return n, nil
}
