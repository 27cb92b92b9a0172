package store

import (
	"context"
	"errors"
	"fmt"
	"stop-viewer-service/internal/platform/obs"
	"stop-viewer-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.KVStore = (*RedisKVStore)(nil)

// Redis backed KVStore. Keys never expire.
type RedisKVStore struct {
	Client redis.UniversalClient
}

func NewRedisKVStore(client redis.UniversalClient) *RedisKVStore {
	return &RedisKVStore{Client: client}
}

// ConnectRedis parses a redis:// URL and verifies the server answers PING.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("connect redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: ping: %w", err)
	}
	return client, nil
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.redis.Get")(&err)

	if r.Client == nil {
		return nil, errors.New("kv store: redis client is nil")
	}

	b, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get kv store: redis GET key=%q: %w", key, err)
	}
	return b, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.redis.Set")(&err)

	if r.Client == nil {
		return errors.New("kv store: redis client is nil")
	}

	if err := r.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("insert kv store: redis SET key=%q: %w", key, err)
	}
	return nil
}
