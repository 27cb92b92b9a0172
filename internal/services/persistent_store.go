package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"stop-viewer-service/internal/ports"
)

// Record keys, scoped per session by the caller's KVStore.
const (
	FavoritesKey = "favorites"
	FiltersKey   = "filters"
)

// PersistentStore is the tolerant boundary in front of a KVStore. Reads
// report absent on any failure and writes swallow failures after logging,
// so callers always proceed with their in-memory state. Each call makes at
// most one attempt.
type PersistentStore struct {
	kv     ports.KVStore
	logger *slog.Logger
}

// NewPersistentStore wraps kv. A nil kv behaves as an always-empty,
// write-discarding medium.
func NewPersistentStore(kv ports.KVStore, logger *slog.Logger) *PersistentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistentStore{kv: kv, logger: logger}
}

// Get returns the raw JSON stored under key, or false when absent or
// unreadable.
func (p *PersistentStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if p.kv == nil {
		return nil, false
	}

	b, err := p.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		p.logger.WarnContext(ctx, "persistent store read failed", "key", key, "err", err)
		return nil, false
	}
	return b, true
}

// Set encodes v as JSON and stores it under key. It reports whether the
// write reached the medium.
func (p *PersistentStore) Set(ctx context.Context, key string, v any) bool {
	if p.kv == nil {
		return false
	}

	b, err := json.Marshal(v)
	if err != nil {
		p.logger.WarnContext(ctx, "persistent store encode failed", "key", key, "err", err)
		return false
	}

	if err := p.kv.Set(ctx, key, b); err != nil {
		p.logger.WarnContext(ctx, "persistent store write failed; keeping session-only state", "key", key, "err", err)
		return false
	}
	return true
}
