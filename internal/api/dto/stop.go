package dto

type StopResponse struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type ListStopsResponse struct {
	Stops   []StopResponse `json:"stops"`
	Unkeyed int            `json:"unkeyed"`
}

type DetailResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
}
