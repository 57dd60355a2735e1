// Package db stores the pipeline run history in sqlite. One row is
// recorded per successful run; failed runs leave the history untouched.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the sqlite database at path and applies any
// pending migrations.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db := &DB{conn}
	if err := db.migrateUp(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Run is one recorded pipeline invocation.
type Run struct {
	RunID       string          `json:"run_id"`
	Size        int             `json:"size"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     json.RawMessage `json:"summary"`
}

// RecordRun inserts a run row and returns its generated ID.
func (db *DB) RecordRun(size int, generatedAt time.Time, summary []byte) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, size, generated_at, summary) VALUES (?, ?, ?, ?)`,
		runID, size, generatedAt.UTC().Format(time.RFC3339), string(summary),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(
		`SELECT run_id, size, generated_at, summary FROM runs ORDER BY generated_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run, or sql.ErrNoRows when the
// history is empty.
func (db *DB) LatestRun() (*Run, error) {
	row := db.QueryRow(
		`SELECT run_id, size, generated_at, summary FROM runs ORDER BY generated_at DESC, rowid DESC LIMIT 1`,
	)
	r, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var generatedAt, summary string
	if err := s.Scan(&r.RunID, &r.Size, &generatedAt, &summary); err != nil {
		return Run{}, err
	}
	ts, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse generated_at %q: %w", generatedAt, err)
	}
	r.GeneratedAt = ts
	r.Summary = json.RawMessage(summary)
	return r, nil
}
