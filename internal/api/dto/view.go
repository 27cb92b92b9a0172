package dto

type FiltersResponse struct {
	DietTags      []string `json:"diet_tags"`
	FavoritesOnly bool     `json:"favorites_only"`
	Search        string   `json:"search"`
	SearchInput   string   `json:"search_input"`
	SearchPending bool     `json:"search_pending"`
}

type MapViewResponse struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

type MarkerResponse struct {
	Key      string    `json:"key"`
	StopID   string    `json:"stop_id,omitempty"`
	Name     string    `json:"name"`
	Position []float64 `json:"position"`
	Icon     string    `json:"icon"`
	ZOffset  int       `json:"z_offset"`
}

type RowResponse struct {
	Key         string   `json:"key"`
	StopID      string   `json:"stop_id,omitempty"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
	Selected    bool     `json:"selected"`
	Selectable  bool     `json:"selectable"`
	Favoritable bool     `json:"favoritable"`
}

type ViewResponse struct {
	Ready            bool             `json:"ready"`
	Filters          FiltersResponse  `json:"filters"`
	Favorites        []string         `json:"favorites"`
	SelectedID       *string          `json:"selected_id"`
	VisibleCount     int              `json:"visible_count"`
	Rows             []RowResponse    `json:"rows"`
	EmptyMessage     string           `json:"empty_message,omitempty"`
	Markers          []MarkerResponse `json:"markers"`
	MapView          *MapViewResponse `json:"map_view,omitempty"`
	Detail           *DetailResponse  `json:"detail"`
	DetailSuppressed bool             `json:"detail_suppressed"`
}

type FavoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

type SelectionResponse struct {
	SelectedID *string `json:"selected_id"`
}
