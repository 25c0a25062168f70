package pgsql

import (
	"context"
	"errors"

	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const (
	selectValueSQL = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	deleteValueSQL = `DELETE FROM kv_store WHERE key = $1`
)

// PgxKVRepository implements the KeyValueStore port on the kv_store table.
type PgxKVRepository struct {
	BaseRepository
}

// NewPgxKVRepository creates a new PgxKVRepository. pool is normally a *pgxpool.Pool.
func NewPgxKVRepository(pool PgxPool) *PgxKVRepository {
	return &PgxKVRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Get returns the value stored under key.
func (r *PgxKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.Pool.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, r.storeError("failed to read key "+key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key.
func (r *PgxKVRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.Pool.Exec(ctx, upsertValueSQL, key, value); err != nil {
		return r.storeError("failed to write key "+key, err)
	}
	return nil
}

// Remove deletes key if present.
func (r *PgxKVRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.Pool.Exec(ctx, deleteValueSQL, key); err != nil {
		return r.storeError("failed to delete key "+key, err)
	}
	return nil
}

var _ portsrepo.KeyValueStore = (*PgxKVRepository)(nil)
