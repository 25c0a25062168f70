package pgsql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of *pgxpool.Pool the repositories use.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool PgxPool
}

// storeError wraps a driver error so that it matches apperrors.ErrPersistence.
func (r *BaseRepository) storeError(message string, err error) error {
	return apperrors.NewAppError(http.StatusInternalServerError, message, fmt.Errorf("%w: %w", apperrors.ErrPersistence, err))
}
