package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// FavoriteSet is the set of favorited stop ids.
type FavoriteSet map[string]struct{}

// NewFavoriteSet builds a set from ids, skipping blank ones.
func NewFavoriteSet(ids ...string) FavoriteSet {
	s := make(FavoriteSet, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

func (s FavoriteSet) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s[id]
	return ok
}

// Toggle flips membership of id and returns the new state. Blank ids are
// ignored and report false.
func (s FavoriteSet) Toggle(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	if _, ok := s[id]; ok {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// IDs returns the members sorted, which keeps the persisted form stable.
func (s FavoriteSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DecodeFavorites parses a persisted favorites record. Anything other than
// a JSON array yields an empty set; non-string and blank elements are
// dropped.
func DecodeFavorites(data []byte) FavoriteSet {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return FavoriteSet{}
	}

	s := make(FavoriteSet, len(items))
	for _, item := range items {
		var id string
		if err := json.Unmarshal(item, &id); err != nil {
			continue
		}
		if strings.TrimSpace(id) == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}
