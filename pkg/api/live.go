package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rubiojr/scour/pkg/storage"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is CORS-open; the live stream follows the same policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveInitMessage struct {
	Type    string                 `json:"type"`
	History []storage.HistoryEntry `json:"history,omitempty"`
}

// HandleLive upgrades to a WebSocket and streams search-activity events.
// The first frame is an init message carrying recent history; after that
// each completed search produces one event frame. Slow clients may miss
// events, never block them.
func (s *Server) HandleLive(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		s.writeError(w, http.StatusNotFound, "Live stream disabled", "No activity hub configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		s.logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	init := liveInitMessage{Type: "init"}
	if s.store != nil {
		if entries, err := s.store.RecentSearches(defaultHistoryLimit); err == nil {
			init.History = entries
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(init); err != nil {
		return
	}

	id, events := s.hub.Register()
	defer s.hub.Unregister(id)

	// Reader goroutine: discard client frames, surface disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
