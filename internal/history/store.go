// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed query sessions in a SQLite database so
// earlier queries can be listed and reused.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

const dbFile = "history.db"

// Entry is one recorded query session.
type Entry struct {
	ID         string
	Question   string
	FinalQuery string
	Database   string
	NumResults int
	CreatedAt  time.Time
}

// Store manages the session history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// cfg.HistoryDir/history.db, creating the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		final_query TEXT NOT NULL,
		db TEXT,
		num_results INTEGER,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record stores a completed session and returns its generated ID.
func (s *Store) Record(ctx context.Context, question, finalQuery, database string, numResults int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, question, final_query, db, num_results, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, question, finalQuery, database, numResults,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	return id, nil
}

// List returns the most recent sessions, newest first. A non-positive limit
// uses the store default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, final_query, db, num_results, created_at
		 FROM sessions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Question, &e.FinalQuery, &e.Database, &e.NumResults, &created); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one session by ID.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, question, final_query, db, num_results, created_at
		 FROM sessions WHERE id = ?`, id).
		Scan(&e.ID, &e.Question, &e.FinalQuery, &e.Database, &e.NumResults, &created)
	if err == sql.ErrNoRows {
		return Entry{}, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("querying session %s: %w", id, err)
	}
	if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
		e.CreatedAt = t
	}
	return e, nil
}
