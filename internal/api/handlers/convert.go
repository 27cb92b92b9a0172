package handlers

import (
	"stop-viewer-service/internal/adapters/surface"
	"stop-viewer-service/internal/api/dto"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/services"
)

func stopResponse(s domain.Stop) dto.StopResponse {
	rec := domain.RecordOf(s)
	return dto.StopResponse{
		ID:          rec.ID,
		Name:        rec.Name,
		Lat:         rec.Lat,
		Lng:         rec.Lng,
		Address:     rec.Address,
		Description: rec.Description,
		Tags:        rec.Tags,
	}
}

func markerResponse(m domain.Marker) dto.MarkerResponse {
	return dto.MarkerResponse{
		Key:      string(m.Key),
		StopID:   m.StopID,
		Name:     m.Name,
		Position: m.Position.CoordsToList(),
		Icon:     string(m.Icon),
		ZOffset:  m.ZOffset,
	}
}

func rowResponse(r domain.ListRow) dto.RowResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.RowResponse{
		Key:         string(r.Key),
		StopID:      r.StopID,
		Name:        r.Name,
		Address:     r.Address,
		Tags:        tags,
		Favorite:    r.Favorite,
		Selected:    r.Selected,
		Selectable:  r.Selectable,
		Favoritable: r.Favoritable,
	}
}

func rowResponses(rows []domain.ListRow) []dto.RowResponse {
	out := make([]dto.RowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowResponse(r))
	}
	return out
}

func detailResponse(d *domain.StopDetail) *dto.DetailResponse {
	if d == nil {
		return nil
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.DetailResponse{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		Description: d.Description,
		Tags:        tags,
		Favorite:    d.Favorite,
	}
}

func mapViewResponse(v *domain.MapView) *dto.MapViewResponse {
	if v == nil {
		return nil
	}
	return &dto.MapViewResponse{Lat: v.Center.Lat, Lng: v.Center.Lng, Zoom: v.Zoom}
}

func selectedID(sel domain.Selection) *string {
	if !sel.IsSelected() {
		return nil
	}
	id := sel.ID()
	return &id
}

func viewResponse(st services.ViewState, vis surface.State) dto.ViewResponse {
	tags := make([]string, 0, len(st.Criteria.DietTags))
	for _, t := range st.Criteria.SelectedDietTags() {
		tags = append(tags, string(t))
	}

	favorites := st.Favorites
	if favorites == nil {
		favorites = []string{}
	}

	markers := make([]dto.MarkerResponse, 0, len(vis.Markers))
	for _, m := range vis.Markers {
		markers = append(markers, markerResponse(m))
	}

	return dto.ViewResponse{
		Ready: st.Ready,
		Filters: dto.FiltersResponse{
			DietTags:      tags,
			FavoritesOnly: st.Criteria.FavoritesOnly,
			Search:        st.Criteria.Search,
			SearchInput:   st.SearchInput,
			SearchPending: st.SearchPending,
		},
		Favorites:        favorites,
		SelectedID:       selectedID(st.Selection),
		VisibleCount:     len(st.Visible),
		Rows:             rowResponses(vis.Rows),
		EmptyMessage:     vis.EmptyMessage,
		Markers:          markers,
		MapView:          mapViewResponse(vis.View),
		Detail:           detailResponse(vis.Detail),
		DetailSuppressed: st.DetailSuppressed,
	}
}

func eventMessage(e surface.Event) dto.EventMessage {
	msg := dto.EventMessage{
		Type:    e.Type,
		Key:     string(e.Key),
		Icon:    string(e.Icon),
		ZOffset: e.ZOffset,
		View:    mapViewResponse(e.View),
		Message: e.Message,
		Detail:  detailResponse(e.Detail),
	}
	if e.Marker != nil {
		m := markerResponse(*e.Marker)
		msg.Marker = &m
	}
	if e.Rows != nil {
		msg.Rows = rowResponses(e.Rows)
	}
	if e.Row != nil {
		r := rowResponse(*e.Row)
		msg.Row = &r
	}
	return msg
}
