package services

import (
	"sort"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// EmptyListMessage is shown in place of rows when nothing is visible.
const EmptyListMessage = "No stops match your filters."

// ListRenderer turns the visible set into name-ordered rows and keeps a
// key → row mapping so single rows can be updated in place.
type ListRenderer struct {
	surface  ports.ListSurface
	collator *collate.Collator
	rows     map[domain.StopKey]domain.ListRow
}

func NewListRenderer(surface ports.ListSurface) *ListRenderer {
	return &ListRenderer{
		surface:  surface,
		collator: collate.New(language.English),
		rows:     make(map[domain.StopKey]domain.ListRow),
	}
}

// SortByName orders entries by locale-aware name comparison. Ties keep
// their catalog order.
func (r *ListRenderer) SortByName(visible []CatalogEntry) []CatalogEntry {
	sorted := append([]CatalogEntry(nil), visible...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return r.collator.CompareString(sorted[i].Stop.Name, sorted[j].Stop.Name) < 0
	})
	return sorted
}

// Render replaces the list with the visible entries, or with the empty
// state indicator when there are none.
func (r *ListRenderer) Render(visible []CatalogEntry, favorites domain.FavoriteSet, sel domain.Selection) {
	r.rows = make(map[domain.StopKey]domain.ListRow, len(visible))

	if len(visible) == 0 {
		r.surface.RenderEmpty(EmptyListMessage)
		return
	}

	sorted := r.SortByName(visible)
	rows := make([]domain.ListRow, 0, len(sorted))
	for _, e := range sorted {
		row := rowFor(e, favorites, sel)
		r.rows[e.Key] = row
		rows = append(rows, row)
	}
	r.surface.RenderRows(rows)
}

func rowFor(e CatalogEntry, favorites domain.FavoriteSet, sel domain.Selection) domain.ListRow {
	keyed := e.Stop.HasID()
	tags := make([]string, len(e.Stop.Tags))
	copy(tags, e.Stop.Tags)
	return domain.ListRow{
		Key:         e.Key,
		StopID:      e.Stop.ID,
		Name:        e.Stop.Name,
		Address:     e.Stop.Address,
		Tags:        tags,
		Favorite:    favorites.Has(e.Stop.ID),
		Selected:    sel.Is(e.Stop.ID),
		Selectable:  keyed,
		Favoritable: keyed,
	}
}

// SetFavorite updates the favorite indicator of one row.
func (r *ListRenderer) SetFavorite(key domain.StopKey, on bool) {
	row, ok := r.rows[key]
	if !ok || row.Favorite == on {
		return
	}
	row.Favorite = on
	r.rows[key] = row
	r.surface.UpdateRow(row)
}

// SetSelected updates the highlight of one row.
func (r *ListRenderer) SetSelected(key domain.StopKey, on bool) {
	row, ok := r.rows[key]
	if !ok || row.Selected == on {
		return
	}
	row.Selected = on
	r.rows[key] = row
	r.surface.UpdateRow(row)
}
