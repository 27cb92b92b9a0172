package dto

type EventMessage struct {
	Type    string           `json:"type"`
	Key     string           `json:"key,omitempty"`
	Marker  *MarkerResponse  `json:"marker,omitempty"`
	Icon    string           `json:"icon,omitempty"`
	ZOffset *int             `json:"z_offset,omitempty"`
	View    *MapViewResponse `json:"view,omitempty"`
	Rows    []RowResponse    `json:"rows,omitempty"`
	Row     *RowResponse     `json:"row,omitempty"`
	Message string           `json:"message,omitempty"`
	Detail  *DetailResponse  `json:"detail,omitempty"`
}
