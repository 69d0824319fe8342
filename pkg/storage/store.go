// Package storage persists search history and bookmarks in a local sqlite
// database. Plain key-value CRUD at the engine's boundary; nothing here
// affects search semantics.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/rubiojr/scour/pkg/core"
)

// Store wraps the sqlite database holding history and bookmarks.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the database at dir/scour.db and ensures the
// schema exists.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "scour.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			intent TEXT NOT NULL,
			result_count INTEGER NOT NULL,
			searched_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_searched_at ON history(searched_at DESC)`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			link TEXT NOT NULL UNIQUE,
			snippet TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Intent      string    `json:"intent"`
	ResultCount int       `json:"result_count"`
	SearchedAt  time.Time `json:"searched_at"`
}

// RecordSearch appends a history entry.
func (s *Store) RecordSearch(query string, intent core.Intent, resultCount int) error {
	_, err := s.db.Exec(
		`INSERT INTO history (id, query, intent, result_count, searched_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), query, string(intent), resultCount, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit entries, newest first.
func (s *Store) RecentSearches(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, query, intent, result_count, searched_at FROM history ORDER BY searched_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Intent, &e.ResultCount, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearHistory removes every history entry.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec(`DELETE FROM history`)
	if err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Bookmark is one saved result.
type Bookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Snippet   string    `json:"snippet,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddBookmark saves a result. Saving the same link twice updates the
// existing bookmark instead of duplicating it.
func (s *Store) AddBookmark(item core.ResultItem) (Bookmark, error) {
	b := Bookmark{
		ID:        uuid.NewString(),
		Title:     item.Title,
		Link:      item.Link,
		Snippet:   item.Snippet,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO bookmarks (id, title, link, snippet, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(link) DO UPDATE SET title = excluded.title, snippet = excluded.snippet`,
		b.ID, b.Title, b.Link, b.Snippet, b.CreatedAt,
	)
	if err != nil {
		return Bookmark{}, fmt.Errorf("adding bookmark: %w", err)
	}
	return b, nil
}

// Bookmarks returns all saved results, newest first.
func (s *Store) Bookmarks() ([]Bookmark, error) {
	rows, err := s.db.Query(`SELECT id, title, link, snippet, created_at FROM bookmarks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.Title, &b.Link, &b.Snippet, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// DeleteBookmark removes a bookmark by ID. Deleting an unknown ID is not an
// error.
func (s *Store) DeleteBookmark(id string) error {
	_, err := s.db.Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	return nil
}
