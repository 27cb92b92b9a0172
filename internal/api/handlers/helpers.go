package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"stop-viewer-service/internal/api/sessions"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func writeNotReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusServiceUnavailable, map[string]any{
		"error": "stop catalog not loaded",
		"ready": false,
	})
}

// decodeJSON reads exactly one JSON object into dst. On failure it writes
// a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// readySession returns the caller's session when its viewer is ready.
// Otherwise it writes the error response and returns false.
func readySession(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	s, ok := sessions.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if !s.Viewer.Ready() {
		writeNotReady(w, r)
		return nil, false
	}
	return s, true
}
