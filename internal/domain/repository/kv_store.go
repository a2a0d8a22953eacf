package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key has no value
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a flat string-to-string store.
// Each call is atomic for its key; there are no multi-key transactions.
type KeyValueStore interface {
	// Get returns the value for key or ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
