package services

import (
	"fmt"
	"stop-viewer-service/internal/domain"
	"strings"
)

// UnkeyedPolicy decides how stops without an id relate to the filters.
type UnkeyedPolicy int

const (
	// UnkeyedShow keeps stops without an id visible regardless of filters.
	UnkeyedShow UnkeyedPolicy = iota
	// UnkeyedFilter runs them through the predicate like any other stop.
	// They never pass favorites-only.
	UnkeyedFilter
)

func ParseUnkeyedPolicy(s string) (UnkeyedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "show":
		return UnkeyedShow, nil
	case "filter":
		return UnkeyedFilter, nil
	default:
		return UnkeyedShow, fmt.Errorf("unknown unkeyed stop policy %q", s)
	}
}

func (p UnkeyedPolicy) String() string {
	if p == UnkeyedFilter {
		return "filter"
	}
	return "show"
}

// VisibilityEngine derives the visible subset of the catalog.
type VisibilityEngine struct {
	catalog *StopCatalog
	policy  UnkeyedPolicy
}

func NewVisibilityEngine(catalog *StopCatalog, policy UnkeyedPolicy) *VisibilityEngine {
	return &VisibilityEngine{catalog: catalog, policy: policy}
}

// VisibleStops scans the catalog in order and keeps the entries matching
// criteria. It is a pure function of its inputs and always returns a new
// slice.
func (v *VisibilityEngine) VisibleStops(criteria domain.FilterCriteria, favorites domain.FavoriteSet) []CatalogEntry {
	out := make([]CatalogEntry, 0, v.catalog.Len())
	for _, e := range v.catalog.Entries() {
		if !e.Stop.HasID() && v.policy == UnkeyedShow {
			out = append(out, e)
			continue
		}
		if criteria.Matches(e.Stop, favorites) {
			out = append(out, e)
		}
	}
	return out
}
