package handlers

import (
	"net/http"
	"stop-viewer-service/internal/api/dto"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/services"

	"github.com/go-chi/chi/v5"
)

// FilterHandler changes the session's filter criteria. Every handler
// answers with the resulting view.
type FilterHandler struct{}

func (h *FilterHandler) SetDietTag(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	tag, ok := domain.ParseDietTag(chi.URLParam(r, "tag"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown diet tag")
		return
	}

	var req dto.ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.Viewer.SetDietTag(r.Context(), string(tag), req.On)
	writeView(w, r, s)
}

func (h *FilterHandler) SetFavoritesOnly(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	var req dto.ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.Viewer.SetFavoritesOnly(r.Context(), req.On)
	writeView(w, r, s)
}

// SetSearch buffers the search text. The filter applies once input has
// been quiet for the debounce interval, so the view returned here still
// reflects the previous search and reports search_pending.
func (h *FilterHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	var req dto.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.Viewer.SetSearch(r.Context(), req.Text)
	writeView(w, r, s)
}

// Update applies several filters and commits once. A search given here
// applies immediately.
func (h *FilterHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	var req dto.FiltersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var diet map[domain.DietTag]bool
	if req.DietTags != nil {
		diet = make(map[domain.DietTag]bool, len(*req.DietTags))
		for _, raw := range *req.DietTags {
			tag, ok := domain.ParseDietTag(raw)
			if !ok {
				writeError(w, r, http.StatusBadRequest, "unknown diet tag: "+raw)
				return
			}
			diet[tag] = true
		}
	}

	s.Viewer.UpdateFilters(r.Context(), func(f *services.FilterCriteria) {
		if diet != nil {
			for _, tag := range domain.AllowedDietTags {
				f.SetDietTag(string(tag), diet[tag])
			}
		}
		if req.FavoritesOnly != nil {
			f.SetFavoritesOnly(*req.FavoritesOnly)
		}
		if req.Search != nil {
			f.SetSearch(*req.Search)
		}
	})
	writeView(w, r, s)
}

func (h *FilterHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	s.Viewer.ResetFilters(r.Context())
	writeView(w, r, s)
}
