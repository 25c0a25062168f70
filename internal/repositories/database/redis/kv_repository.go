package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// KVRepository implements the KeyValueStore port on Redis strings.
// Keys are namespaced with prefix so several deployments can share a database.
type KVRepository struct {
	client goredis.UniversalClient
	prefix string
}

// NewKVRepository creates a repository over client.
func NewKVRepository(client goredis.UniversalClient, prefix string) *KVRepository {
	return &KVRepository{client: client, prefix: prefix}
}

func (r *KVRepository) key(key string) string {
	return r.prefix + key
}

// Get returns the value stored under key.
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: redis get %s: %w", apperrors.ErrPersistence, key, err)
	}
	return val, true, nil
}

// Set stores value under key without expiry.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %w", apperrors.ErrPersistence, key, err)
	}
	return nil
}

// Remove deletes key if present.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: redis del %s: %w", apperrors.ErrPersistence, key, err)
	}
	return nil
}

var _ portsrepo.KeyValueStore = (*KVRepository)(nil)
