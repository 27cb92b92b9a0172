package handlers

import (
	"net/http"
	"stop-viewer-service/internal/api/sessions"
)

// HealthHandler provides a minimal liveness check that also reports whether
// the stop catalog has loaded.
type HealthHandler struct {
	Sessions *sessions.Registry
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	catalog := "loading"
	if _, ok := h.Sessions.Catalog(); ok {
		catalog = "ready"
	}

	res := map[string]any{
		"status":   "ok",
		"catalog":  catalog,
		"sessions": h.Sessions.Len(),
	}
	writeJSON(w, r, http.StatusOK, res)
}
