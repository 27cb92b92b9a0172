package services

import (
	"context"
	"stop-viewer-service/internal/domain"
	"strings"
)

// FavoritesRegistry is the set of favorited stop ids, saved after every
// mutation.
type FavoritesRegistry struct {
	store *PersistentStore
	set   domain.FavoriteSet
}

func NewFavoritesRegistry(store *PersistentStore) *FavoritesRegistry {
	return &FavoritesRegistry{store: store, set: domain.NewFavoriteSet()}
}

// Load replaces the in-memory set with the persisted one. Missing or
// corrupt data yields an empty set.
func (f *FavoritesRegistry) Load(ctx context.Context) {
	raw, ok := f.store.Get(ctx, FavoritesKey)
	if !ok {
		f.set = domain.NewFavoriteSet()
		return
	}
	f.set = domain.DecodeFavorites(raw)
}

func (f *FavoritesRegistry) IsFavorite(id string) bool {
	return f.set.Has(id)
}

// Toggle flips membership of id, saves, and returns the new membership.
// A blank id is a no-op reporting changed=false.
func (f *FavoritesRegistry) Toggle(ctx context.Context, id string) (favorite bool, changed bool) {
	if strings.TrimSpace(id) == "" {
		return false, false
	}
	favorite = f.set.Toggle(id)
	f.store.Set(ctx, FavoritesKey, f.set.IDs())
	return favorite, true
}

// Set exposes the current members for read-only use.
func (f *FavoritesRegistry) Set() domain.FavoriteSet {
	return f.set
}

func (f *FavoritesRegistry) IDs() []string {
	return f.set.IDs()
}
