package repositories

import (
	"context"
)

// KeyValueReader defines read operations on the key-value store.
type KeyValueReader interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
}

// KeyValueWriter defines write operations on the key-value store.
type KeyValueWriter interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// KeyValueStore combines all key-value store operations.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
}
