package handlers

import (
	"log/slog"
	"net/http"
	"stop-viewer-service/internal/api/dto"
	"stop-viewer-service/internal/api/sessions"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventsWriteWait = 10 * time.Second
	eventsPongWait  = 60 * time.Second
	eventsPingEvery = (eventsPongWait * 9) / 10
)

// EventHandler streams the session's surface events over a websocket. The
// first message is a "snapshot" carrying the full view; every later message
// is one incremental change made after it. When the session closes or the
// client falls too far behind, the socket is closed and the client should
// reconnect for a fresh snapshot.
type EventHandler struct {
	Upgrader websocket.Upgrader
}

// NewEventHandler accepts upgrades from any origin when allowedOrigins is
// empty or contains "*", otherwise only from the listed origins.
func NewEventHandler(allowedOrigins []string) *EventHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &EventHandler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin] {
					return true
				}
				return origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
	}
}

type snapshotMessage struct {
	Type string           `json:"type"`
	View dto.ViewResponse `json:"view"`
}

func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	s, ok := sessions.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	logger := slog.With("session", s.ID)

	state, events, cancel := s.Subscribe()
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(eventsPongWait)); err != nil {
		logger.Warn("events ws set read deadline failed", "err", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	})

	// The client sends nothing meaningful; reading drives pong handling and
	// notices the close.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	snapshot := snapshotMessage{Type: "snapshot", View: viewResponse(s.Viewer.Snapshot(), state)}
	if err := writeWS(conn, snapshot); err != nil {
		return
	}

	ticker := time.NewTicker(eventsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-readerDone:
			return
		case <-r.Context().Done():
			return
		case e, open := <-events:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "resubscribe"),
					time.Now().Add(eventsWriteWait))
				return
			}
			if err := writeWS(conn, eventMessage(e)); err != nil {
				logger.Debug("events ws write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
