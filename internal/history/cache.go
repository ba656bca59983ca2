package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS revisions (
    path TEXT PRIMARY KEY,
    commit_unix INTEGER NOT NULL,
    probed_unix INTEGER NOT NULL
);
`

// CachedProvider wraps another provider with a SQLite-backed cache of
// revision times, so repeated runs over an unchanged tree avoid spawning
// one git process per file. A cached result is trusted until the file's
// modification time passes the time it was probed.
type CachedProvider struct {
	inner Provider
	root  string
	db    *sql.DB
}

// NewCachedProvider opens (or creates) the cache database at dbPath and
// wraps inner with it.
func NewCachedProvider(inner Provider, root, dbPath string) (*CachedProvider, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open revision cache: %w", err)
	}

	// Single writer; the pipeline is sequential and Warm serializes through
	// the connection pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply cache schema: %w", err)
	}

	return &CachedProvider{inner: inner, root: root, db: db}, nil
}

// Close closes the cache database.
func (c *CachedProvider) Close() error {
	return c.db.Close()
}

func (c *CachedProvider) warmable() {}

// LastRevision returns the cached commit time when still valid, otherwise
// queries the inner provider and stores the result. Cache failures degrade
// to the inner provider rather than failing the query.
func (c *CachedProvider) LastRevision(ctx context.Context, path string) (time.Time, error) {
	if t, ok := c.lookup(ctx, path); ok {
		return t, nil
	}

	t, err := c.inner.LastRevision(ctx, path)
	if err != nil {
		return time.Time{}, err
	}

	c.store(ctx, path, t)
	return t, nil
}

// lookup returns a cached revision time when present and not stale.
func (c *CachedProvider) lookup(ctx context.Context, path string) (time.Time, bool) {
	var commitUnix, probedUnix int64
	err := c.db.QueryRowContext(ctx,
		"SELECT commit_unix, probed_unix FROM revisions WHERE path = ?", path).
		Scan(&commitUnix, &probedUnix)
	if err != nil {
		// Includes sql.ErrNoRows; any cache miss or failure falls through
		// to the inner provider.
		return time.Time{}, false
	}

	info, statErr := os.Stat(filepath.Join(c.root, path))
	if statErr != nil || info.ModTime().Unix() > probedUnix {
		// File changed since the probe; the cached commit time may be stale.
		return time.Time{}, false
	}

	return time.Unix(commitUnix, 0).UTC(), true
}

// store records a probe result.
func (c *CachedProvider) store(ctx context.Context, path string, t time.Time) {
	_, _ = c.db.ExecContext(ctx,
		`INSERT INTO revisions (path, commit_unix, probed_unix) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET commit_unix = excluded.commit_unix, probed_unix = excluded.probed_unix`,
		path, t.Unix(), time.Now().Unix())
}
