package memory

import (
	"context"
	"sync"

	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
)

// KVRepository is an in-process KeyValueStore. Contents are lost on restart.
type KVRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVRepository creates an empty store.
func NewKVRepository() *KVRepository {
	return &KVRepository{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

// Remove deletes key.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

var _ portsrepo.KeyValueStore = (*KVRepository)(nil)
