package api

import (
	"time"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/storage"
)

// SourceGroup is one intent's slice of the catalog.
type SourceGroup struct {
	Intent  core.Intent   `json:"intent"`
	Sources []core.Source `json:"sources"`
}

type ListSourcesResponse struct {
	Groups []SourceGroup `json:"groups"`
	Count  int           `json:"count"`
}

type HistoryResponse struct {
	Entries []storage.HistoryEntry `json:"entries"`
	Count   int                    `json:"count"`
}

type BookmarksResponse struct {
	Bookmarks []storage.Bookmark `json:"bookmarks"`
	Count     int                `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
