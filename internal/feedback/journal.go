// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feedback records reaction gestures in a local journal.
//
// Every like, dislike, copy, and share is written to a small sqlite
// database in the data directory before the remote /log_action call is
// attempted. The remote call is fire-and-forget and lossy by design;
// the journal is the durable record that survives an unreachable
// backend.
package feedback

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// journalFileName is the database file inside the data directory.
const journalFileName = "feedback.db"

const schema = `
CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	action     TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at);
`

// Entry is one recorded feedback gesture.
type Entry struct {
	ID        string
	Action    string
	Content   string
	CreatedAt time.Time
}

// Journal is the local feedback store.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the feedback journal under dataDir.
func Open(dataDir string) (*Journal, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, journalFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback journal: %w", err)
	}

	// The journal has exactly one writer, the UI event loop.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize feedback schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends a feedback entry and returns its id.
func (j *Journal) Record(action, content string) (string, error) {
	id := uuid.New().String()
	_, err := j.db.Exec(
		"INSERT INTO feedback (id, action, content, created_at) VALUES (?, ?, ?, ?)",
		id, action, content, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record feedback: %w", err)
	}
	return id, nil
}

// Recent returns the most recent entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		"SELECT id, action, content, created_at FROM feedback ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of journal entries.
func (j *Journal) Count() (int, error) {
	var n int
	err := j.db.QueryRow("SELECT COUNT(*) FROM feedback").Scan(&n)
	return n, err
}
