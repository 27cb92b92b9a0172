package store

import (
	"context"
	"errors"
	"stop-viewer-service/internal/adapters/repositories"
	"stop-viewer-service/internal/platform/db"
	"stop-viewer-service/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSqliteStore(t *testing.T) *SqliteKVStore {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(conn, db.DialectSQLite))
	return NewSqliteKVStore(conn)
}

func newRedisStore(t *testing.T) (*RedisKVStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisKVStore(client), mr
}

func TestKVStoresRoundTrip(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	backends := map[string]ports.KVStore{
		"memory": NewMemoryKVStore(),
		"sqlite": newSqliteStore(t),
		"redis":  redisStore,
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := kv.Get(ctx, "missing")
			assert.ErrorIs(t, err, ports.ErrNotFound)

			require.NoError(t, kv.Set(ctx, "favorites", []byte(`["a"]`)))
			require.NoError(t, kv.Set(ctx, "favorites", []byte(`["a","b"]`)))

			got, err := kv.Get(ctx, "favorites")
			require.NoError(t, err)
			assert.JSONEq(t, `["a","b"]`, string(got))
		})
	}
}

func TestSqliteKVStoreRejectsEmptyKey(t *testing.T) {
	kv := newSqliteStore(t)
	assert.Error(t, kv.Set(context.Background(), " ", []byte(`1`)))
}

func TestRedisKVStoreSurfacesServerErrors(t *testing.T) {
	kv, mr := newRedisStore(t)
	mr.SetError("READONLY replica")

	err := kv.Set(context.Background(), "k", []byte(`1`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ports.ErrNotFound))
}

type failingKVStore struct {
	ports.KVStore
	failSet bool
	gets    int
}

func (f *failingKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.gets++
	return f.KVStore.Get(ctx, key)
}

func (f *failingKVStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.KVStore.Set(ctx, key, value)
}

func TestCachedKVStoreReadsThrough(t *testing.T) {
	ctx := context.Background()
	backend := &failingKVStore{KVStore: NewMemoryKVStore()}
	require.NoError(t, backend.KVStore.Set(ctx, "k", []byte(`"v1"`)))

	kv, err := NewCachedKVStore(backend, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `"v1"`, string(got))
	}
	assert.Equal(t, 1, backend.gets)

	require.NoError(t, kv.Set(ctx, "k", []byte(`"v2"`)))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v2"`, string(got))
	assert.Equal(t, 1, backend.gets)
}

func TestCachedKVStoreDropsEntryOnFailedWrite(t *testing.T) {
	ctx := context.Background()
	backend := &failingKVStore{KVStore: NewMemoryKVStore()}
	kv, err := NewCachedKVStore(backend, 8)
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "k", []byte(`1`)))
	backend.failSet = true
	require.Error(t, kv.Set(ctx, "k", []byte(`2`)))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `1`, string(got))
}

func TestNamespacedIsolatesKeys(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryKVStore()
	a := NewNamespaced(shared, "stopviewer:a")
	b := NewNamespaced(shared, "stopviewer:b")

	require.NoError(t, a.Set(ctx, "favorites", []byte(`["x"]`)))

	_, err := b.Get(ctx, "favorites")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	raw, err := shared.Get(ctx, "stopviewer:a:favorites")
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, string(raw))
}
