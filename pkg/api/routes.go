package api

import (
	"net/http"
)

// RegisterRoutes wires every endpoint onto the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/sources", s.HandleListSources)
	mux.HandleFunc("GET /api/history", s.HandleHistory)
	mux.HandleFunc("DELETE /api/history", s.HandleClearHistory)
	mux.HandleFunc("GET /api/bookmarks", s.HandleListBookmarks)
	mux.HandleFunc("POST /api/bookmarks", s.HandleAddBookmark)
	mux.HandleFunc("DELETE /api/bookmarks/{id}", s.HandleDeleteBookmark)
	mux.HandleFunc("GET /api/live", s.HandleLive)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
