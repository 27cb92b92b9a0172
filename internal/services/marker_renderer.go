package services

import (
	"log/slog"
	"sort"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
)

// MarkerRenderer keeps one map marker per visible, placeable stop. It owns
// the key → handle mapping and only touches markers whose visibility or
// visual state changed.
type MarkerRenderer struct {
	surface ports.MapSurface
	handles map[domain.StopKey]ports.MarkerHandle
}

func NewMarkerRenderer(surface ports.MapSurface) *MarkerRenderer {
	return &MarkerRenderer{
		surface: surface,
		handles: make(map[domain.StopKey]ports.MarkerHandle),
	}
}

// Sync removes markers of stops that left the visible set and places
// markers for stops that joined it. Markers that stay are left alone.
func (r *MarkerRenderer) Sync(visible []CatalogEntry, favorites domain.FavoriteSet, sel domain.Selection) (added, removed int) {
	want := make(map[domain.StopKey]struct{}, len(visible))
	for _, e := range visible {
		if e.Stop.HasCoords() {
			want[e.Key] = struct{}{}
		}
	}

	stale := make([]domain.StopKey, 0)
	for key := range r.handles {
		if _, ok := want[key]; !ok {
			stale = append(stale, key)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i] < stale[j] })
	for _, key := range stale {
		r.surface.RemoveMarker(r.handles[key])
		delete(r.handles, key)
		removed++
	}

	for _, e := range visible {
		if _, ok := r.handles[e.Key]; ok {
			continue
		}
		pos, ok := e.Stop.Coordinates()
		if !ok {
			slog.Debug("stop not placed on map", "key", e.Key, "lat", domain.FormatCoord(e.Stop.Lat), "lng", domain.FormatCoord(e.Stop.Lng))
			continue
		}

		selected := sel.Is(e.Stop.ID)
		r.handles[e.Key] = r.surface.PlaceMarker(domain.Marker{
			Key:      e.Key,
			StopID:   e.Stop.ID,
			Name:     e.Stop.Name,
			Position: pos,
			Icon:     domain.IconFor(selected, favorites.Has(e.Stop.ID)),
			ZOffset:  domain.ZOffsetFor(selected),
		})
		added++
	}

	return added, removed
}

// SetIcon swaps the icon of the marker for key, if it is placed.
func (r *MarkerRenderer) SetIcon(key domain.StopKey, icon domain.MarkerIcon) {
	if h, ok := r.handles[key]; ok {
		r.surface.SetMarkerIcon(h, icon)
	}
}

// SetZOffset changes the stacking order of the marker for key, if placed.
func (r *MarkerRenderer) SetZOffset(key domain.StopKey, z int) {
	if h, ok := r.handles[key]; ok {
		r.surface.SetMarkerZOffset(h, z)
	}
}

// Count returns the number of placed markers.
func (r *MarkerRenderer) Count() int { return len(r.handles) }
