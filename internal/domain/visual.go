package domain

// MarkerIcon is the icon variant a map marker shows.
type MarkerIcon string

const (
	IconDefault  MarkerIcon = "default"
	IconFavorite MarkerIcon = "favorite"
	IconSelected MarkerIcon = "selected"
)

const (
	DefaultZOffset = 0
	// SelectedZOffset raises the selected marker above every default marker.
	SelectedZOffset = 1000
)

// IconFor derives the marker icon. Selection wins over favorite.
func IconFor(selected, favorite bool) MarkerIcon {
	switch {
	case selected:
		return IconSelected
	case favorite:
		return IconFavorite
	default:
		return IconDefault
	}
}

// ZOffsetFor derives the marker stacking offset.
func ZOffsetFor(selected bool) int {
	if selected {
		return SelectedZOffset
	}
	return DefaultZOffset
}

// ListRow is the visual state of one list entry. Selectable and Favoritable
// are independent affordances; neither triggers the other.
type ListRow struct {
	Key         StopKey
	StopID      string
	Name        string
	Address     string
	Tags        []string
	Favorite    bool
	Selected    bool
	Selectable  bool
	Favoritable bool
}

// Marker is the visual state of one map marker.
type Marker struct {
	Key      StopKey
	StopID   string
	Name     string
	Position Coordinates
	Icon     MarkerIcon
	ZOffset  int
}
