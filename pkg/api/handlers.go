package api

import (
	"errors"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/realtime"
	"github.com/rubiojr/scour/pkg/search"
	"github.com/rubiojr/scour/pkg/version"
)

const defaultHistoryLimit = 50

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseSearchParams(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}
	if strings.TrimSpace(params.Query) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'q' is required")
		return
	}
	if params.ClientIP == "" {
		params.ClientIP = clientIP(r)
	}

	started := time.Now()
	results, err := s.searchService().Search(r.Context(), params)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			s.writeError(w, http.StatusBadRequest, "Missing query parameter", err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	if s.store != nil && !results.Blocked && !results.Cached {
		if err := s.store.RecordSearch(params.Query, results.Intent, len(results.Results)); err != nil {
			s.logger.Warnf("recording search history: %v", err)
		}
	}
	if s.hub != nil {
		s.hub.Publish(realtime.SearchEvent{
			Query:       params.Query,
			Intent:      results.Intent,
			SourceCount: len(results.Sources),
			ResultCount: len(results.Results),
			Blocked:     results.Blocked,
			Cached:      results.Cached,
			DurationMS:  time.Since(started).Milliseconds(),
		})
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) HandleListSources(w http.ResponseWriter, r *http.Request) {
	catalog := s.sourceCatalog()
	groups := make([]SourceGroup, 0, len(catalog))
	count := 0
	for intent, sources := range catalog {
		groups = append(groups, SourceGroup{Intent: intent, Sources: sources})
		count += len(sources)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Intent < groups[j].Intent })

	s.writeJSON(w, http.StatusOK, ListSourcesResponse{
		Groups: groups,
		Count:  count,
	})
}

func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "History disabled", "No storage configured")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "Invalid parameter", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.store.RecentSearches(limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read history", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

func (s *Server) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "History disabled", "No storage configured")
		return
	}
	if err := s.store.ClearHistory(); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to clear history", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleListBookmarks(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "Bookmarks disabled", "No storage configured")
		return
	}
	bookmarks, err := s.store.Bookmarks()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read bookmarks", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: bookmarks, Count: len(bookmarks)})
}

func (s *Server) HandleAddBookmark(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "Bookmarks disabled", "No storage configured")
		return
	}

	var item core.ResultItem
	if err := decodeJSONBody(r, &item); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if item.Link == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid body", "link is required")
		return
	}

	bookmark, err := s.store.AddBookmark(item)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to save bookmark", err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, bookmark)
}

func (s *Server) HandleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "Bookmarks disabled", "No storage configured")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid path", "Bookmark id is required")
		return
	}
	if err := s.store.DeleteBookmark(id); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to delete bookmark", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

// clientIP extracts the requester's address, preferring the first
// X-Forwarded-For hop when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
