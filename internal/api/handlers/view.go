package handlers

import (
	"net/http"
	"stop-viewer-service/internal/api/dto"
	"stop-viewer-service/internal/api/sessions"

	"github.com/go-chi/chi/v5"
)

// ViewHandler serves the session's view state and the selection and
// favorite actions that change it.
type ViewHandler struct{}

// View returns the full view snapshot. Before the catalog loads the
// snapshot is returned with a 503 and ready=false.
func (h *ViewHandler) View(w http.ResponseWriter, r *http.Request) {
	s, ok := sessions.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeView(w, r, s)
}

// ToggleFavorite flips the favorite state of a stop. It never selects.
func (h *ViewHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	favorite, ok := s.Viewer.ToggleFavorite(r.Context(), id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown stop")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FavoriteResponse{ID: id, Favorite: favorite})
}

// Select selects a stop. Selecting a stop that is unknown or filtered out
// clears the selection instead.
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	sel := s.Viewer.Select(chi.URLParam(r, "id"))
	writeJSON(w, r, http.StatusOK, dto.SelectionResponse{SelectedID: selectedID(sel)})
}

func (h *ViewHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	s.Viewer.ClearSelection()
	writeJSON(w, r, http.StatusOK, dto.SelectionResponse{})
}

// SetDetailSuppressed is called by frontend chrome (tabs, overlays) that
// covers the detail display.
func (h *ViewHandler) SetDetailSuppressed(w http.ResponseWriter, r *http.Request) {
	s, ok := readySession(w, r)
	if !ok {
		return
	}

	var req dto.SuppressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.Viewer.SuppressDetail(req.Suppressed)
	writeView(w, r, s)
}

func writeView(w http.ResponseWriter, r *http.Request, s *sessions.Session) {
	st := s.Viewer.Snapshot()
	res := viewResponse(st, s.State())

	status := http.StatusOK
	if !st.Ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, r, status, res)
}
