package services

import (
	"stop-viewer-service/internal/adapters/surface"
	"stop-viewer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerRendererSkipsStopsWithoutCoordinates(t *testing.T) {
	catalog := NewStopCatalog([]domain.Stop{
		{ID: "a", Name: "Taco A", Lat: ptr(1), Lng: ptr(1)},
		{ID: "b", Name: "Taco B"},
		{ID: "c", Name: "Taco C", Lat: ptr(3), Lng: ptr(3)},
	})
	rec := surface.NewRecorder(false)
	r := NewMarkerRenderer(rec)

	added, removed := r.Sync(catalog.Entries(), domain.NewFavoriteSet("c"), domain.Selected("a"))
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, 1, catalog.UnplacedCount())

	st := rec.State()
	assert.Equal(t, domain.IconSelected, st.Markers[0].Icon)
	assert.Equal(t, domain.SelectedZOffset, st.Markers[0].ZOffset)
	assert.Equal(t, domain.IconFavorite, st.Markers[1].Icon)

	added, removed = r.Sync(catalog.Entries()[2:], domain.NewFavoriteSet(), domain.Selection{})
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.Count())
	assert.Len(t, rec.State().Markers, 1)
}
