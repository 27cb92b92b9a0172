package dto

type ToggleRequest struct {
	On bool `json:"on"`
}

type SearchRequest struct {
	Text string `json:"text"`
}

// FiltersRequest updates several filters in one commit. Absent fields are
// left unchanged; diet_tags replaces the whole diet selection.
type FiltersRequest struct {
	DietTags      *[]string `json:"diet_tags"`
	FavoritesOnly *bool     `json:"favorites_only"`
	Search        *string   `json:"search"`
}

type SuppressRequest struct {
	Suppressed bool `json:"suppressed"`
}
