package store

import (
	"context"
	"errors"
	"fmt"
	"stop-viewer-service/internal/ports"

	lru "github.com/hashicorp/golang-lru/v2"
)

var _ ports.KVStore = (*CachedKVStore)(nil)

// CachedKVStore keeps recently used values in an LRU in front of a slower
// backend. Writes go to the backend first and only reach the cache when
// the backend accepted them, so the cache never holds a value the backend
// does not.
type CachedKVStore struct {
	next  ports.KVStore
	cache *lru.Cache[string, []byte]
}

func NewCachedKVStore(next ports.KVStore, size int) (*CachedKVStore, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("cached kv store: %w", err)
	}
	return &CachedKVStore{next: next, cache: cache}, nil
}

func (c *CachedKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		return clone(v), nil
	}

	v, err := c.next.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("cached kv store: %w", err)
	}

	c.cache.Add(key, clone(v))
	return v, nil
}

func (c *CachedKVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Remove(key)
		return fmt.Errorf("cached kv store: %w", err)
	}
	c.cache.Add(key, clone(value))
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
