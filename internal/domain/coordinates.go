package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lat, lng], the order map clients expect.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lng} }

// Center and zoom level of a map view.
type MapView struct {
	Center Coordinates
	Zoom   int
}
