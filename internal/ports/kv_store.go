package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KVStore.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Contract for a durable key-value medium holding JSON blobs.
type KVStore interface {
	// Return the raw JSON stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Store value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
