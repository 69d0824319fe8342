// Package api exposes the search engine over HTTP: the search endpoint
// itself, the source catalog, history and bookmarks, and a WebSocket stream
// of live search activity.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/log"
	"github.com/rubiojr/scour/pkg/realtime"
	"github.com/rubiojr/scour/pkg/search"
	"github.com/rubiojr/scour/pkg/storage"
)

// Server handles all HTTP endpoints. Store and Hub are optional: a nil
// store disables the history/bookmark endpoints and a nil hub disables the
// live stream.
type Server struct {
	mu      sync.RWMutex
	service *search.Service
	store   *storage.Store
	hub     *realtime.Hub
	catalog map[core.Intent][]core.Source
	logger  *log.Logger
}

// NewServer creates an API server over the given search service.
func NewServer(service *search.Service, store *storage.Store, hub *realtime.Hub, catalog map[core.Intent][]core.Source) *Server {
	if catalog == nil {
		catalog = core.DefaultCatalog()
	}
	return &Server{
		service: service,
		store:   store,
		hub:     hub,
		catalog: catalog,
		logger:  log.ForComponent("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

// UpdateService swaps the search service (and catalog) after a config
// reload. The old service is closed once no handler can pick it up anymore;
// in-flight requests keep their reference.
func (s *Server) UpdateService(service *search.Service, catalog map[core.Intent][]core.Source) {
	s.mu.Lock()
	old := s.service
	s.service = service
	if catalog != nil {
		s.catalog = catalog
	}
	s.mu.Unlock()

	if old != nil && old != service {
		old.Close()
	}
}

func (s *Server) searchService() *search.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.service
}

func (s *Server) sourceCatalog() map[core.Intent][]core.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func decodeJSONBody(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

// CorsMiddleware allows cross-origin access to the API.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
