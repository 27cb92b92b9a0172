package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"stop-viewer-service/internal/platform/obs"
	"stop-viewer-service/internal/ports"
	"strings"
)

var _ ports.KVStore = (*SQLKVStore)(nil)

// SQLKVStore is a Postgres-backed KVStore over the kv_store table.
type SQLKVStore struct {
	DB *sql.DB
}

func NewSQLKVStore(db *sql.DB) *SQLKVStore {
	return &SQLKVStore{DB: db}
}

// Fetch the value stored under key.
func (s *SQLKVStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.sql.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("kv store: db is nil")
	}

	var value string
	err = s.DB.QueryRowContext(ctx, `
	SELECT value
    FROM kv_store
    WHERE key = $1;
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get kv store: query kv_store table key=%q: %w", key, err)
	}

	return []byte(value), nil
}

// Store value under key.
func (s *SQLKVStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.sql.Set")(&err)

	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert kv store: empty key")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO kv_store (key, value, updated_at)
    VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("insert kv store key=%q: %w", key, err)
	}

	return nil
}
