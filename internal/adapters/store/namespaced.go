package store

import (
	"context"
	"stop-viewer-service/internal/ports"
)

// Namespaced prefixes every key so several sessions can share one backend.
type Namespaced struct {
	next   ports.KVStore
	prefix string
}

// NewNamespaced scopes next to keys under "<namespace>:".
func NewNamespaced(next ports.KVStore, namespace string) *Namespaced {
	return &Namespaced{next: next, prefix: namespace + ":"}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.next.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.next.Set(ctx, n.prefix+key, value)
}
