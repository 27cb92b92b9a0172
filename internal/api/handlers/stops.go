package handlers

import (
	"net/http"
	"stop-viewer-service/internal/api/dto"
	"stop-viewer-service/internal/api/sessions"
)

// StopHandler exposes the read-only stop catalog.
type StopHandler struct {
	Sessions *sessions.Registry
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, ok := h.Sessions.Catalog()
	if !ok {
		writeNotReady(w, r)
		return
	}

	stops := catalog.Stops()
	res := dto.ListStopsResponse{
		Stops:   make([]dto.StopResponse, 0, len(stops)),
		Unkeyed: catalog.UnkeyedCount(),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, stopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}
