package ports

import "stop-viewer-service/internal/domain"

// MarkerHandle refers to a marker placed on a MapSurface.
type MarkerHandle any

// Capability consumed from the map-rendering library.
type MapSurface interface {
	// Place a point marker and return a handle for later updates.
	PlaceMarker(m domain.Marker) MarkerHandle
	RemoveMarker(h MarkerHandle)
	SetMarkerIcon(h MarkerHandle, icon domain.MarkerIcon)
	SetMarkerZOffset(h MarkerHandle, z int)
	SetView(v domain.MapView)
}

// Capability consumed from the list view.
type ListSurface interface {
	// Replace all rows.
	RenderRows(rows []domain.ListRow)
	// Replace all rows with a single empty-state indicator.
	RenderEmpty(message string)
	// Update one row in place.
	UpdateRow(row domain.ListRow)
}

// Detail display for the selected stop.
type DetailDisplay interface {
	ShowDetail(d domain.StopDetail)
	HideDetail()
}

// Surfaces bundles the three view collaborators driven by the core.
type Surfaces struct {
	Map    MapSurface
	List   ListSurface
	Detail DetailDisplay
}
