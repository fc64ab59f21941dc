package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteCache persists entries in a SQLite database so they survive restarts.
type SQLiteCache struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets a watch loop read while a report run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, now: time.Now}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite cache opened")
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries(expires_at)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (c *SQLiteCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		exp   int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key).Scan(&value, &exp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	if exp != 0 && c.now().Unix() >= exp {
		return nil, false, nil
	}
	return value, true, nil
}

func (c *SQLiteCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var exp int64
	if ttl > 0 {
		exp = now.Add(ttl).Unix()
	}
	_, err := c.db.ExecContext(ctx, `INSERT INTO cache_entries (key, value, expires_at, updated_at)
		VALUES (?,?,?,?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		key, value, exp, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE expires_at != 0 AND expires_at <= ?`, c.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *SQLiteCache) Close() error {
	log.Info().Msg("closing sqlite cache")
	return c.db.Close()
}
