package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
)

// KVRepository implements the KeyValueStore port on a SQLite kv_store table.
type KVRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewKVRepository creates the kv_store table if needed and returns a repository over db.
// db is normally opened with pkg/database.NewSQLiteDB.
func NewKVRepository(ctx context.Context, db *sql.DB) (*KVRepository, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return &KVRepository{db: db, now: time.Now}, nil
}

// Get returns the value stored under key.
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read key %s: %w", apperrors.ErrPersistence, key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, r.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to write key %s: %w", apperrors.ErrPersistence, key, err)
	}
	return nil
}

// Remove deletes key if present.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: failed to delete key %s: %w", apperrors.ErrPersistence, key, err)
	}
	return nil
}

var _ portsrepo.KeyValueStore = (*KVRepository)(nil)
