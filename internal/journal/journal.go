// Package journal persists refresh batch history to SQLite so past
// fetch outcomes survive the process. One row per batch, one row per
// fetched URL, pruned to a configured number of recent batches.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"smartlists/internal/config"
)

// Entry records the fetch outcome for one list URL within a batch.
type Entry struct {
	ListURL    string
	Source     string
	TotalItems int
	IMDbIDs    int
	TMDbIDs    int
	TVDbIDs    int
	Warned     bool
}

// Batch records one refresh run.
type Batch struct {
	BatchID    string
	StartedAt  time.Time
	FinishedAt time.Time
	URLCount   int
	Warnings   []string
	Entries    []Entry
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db          *sql.DB
	path        string
	keepBatches int
}

// Open initializes or connects to the journal database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Journal.Path
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, keepBatches: cfg.Journal.KeepBatches}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordBatch writes one batch and its entries, then prunes history
// beyond the configured retention.
func (s *Store) RecordBatch(ctx context.Context, batch Batch) error {
	if batch.BatchID == "" {
		return fmt.Errorf("record batch: batch id is required")
	}
	warnings := batch.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO refresh_batches (batch_id, started_at, finished_at, url_count, warnings_json)
         VALUES (?, ?, ?, ?, ?)`,
		batch.BatchID,
		batch.StartedAt.UTC().Format(time.RFC3339Nano),
		batch.FinishedAt.UTC().Format(time.RFC3339Nano),
		batch.URLCount,
		string(warningsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, entry := range batch.Entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO refresh_entries (batch_id, list_url, source, total_items, imdb_ids, tmdb_ids, tvdb_ids, warned)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			batch.BatchID,
			entry.ListURL,
			entry.Source,
			entry.TotalItems,
			entry.IMDbIDs,
			entry.TMDbIDs,
			entry.TVDbIDs,
			boolToInt(entry.Warned),
		)
		if err != nil {
			return fmt.Errorf("insert entry for %s: %w", entry.ListURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	return s.prune(ctx)
}

// RecentBatches returns up to limit batches, newest first, entries in
// fetch order.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT batch_id, started_at, finished_at, url_count, warnings_json
         FROM refresh_batches ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var (
			batch        Batch
			startedAt    string
			finishedAt   string
			warningsJSON string
		)
		if err := rows.Scan(&batch.BatchID, &startedAt, &finishedAt, &batch.URLCount, &warningsJSON); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if batch.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at for %s: %w", batch.BatchID, err)
		}
		if batch.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at for %s: %w", batch.BatchID, err)
		}
		if err := json.Unmarshal([]byte(warningsJSON), &batch.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings for %s: %w", batch.BatchID, err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range batches {
		entries, err := s.batchEntries(ctx, batches[i].BatchID)
		if err != nil {
			return nil, err
		}
		batches[i].Entries = entries
	}
	return batches, nil
}

func (s *Store) batchEntries(ctx context.Context, batchID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT list_url, source, total_items, imdb_ids, tmdb_ids, tvdb_ids, warned
         FROM refresh_entries WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries for %s: %w", batchID, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry  Entry
			warned int
		)
		if err := rows.Scan(&entry.ListURL, &entry.Source, &entry.TotalItems, &entry.IMDbIDs, &entry.TMDbIDs, &entry.TVDbIDs, &warned); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Warned = warned != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// prune drops batches beyond the retention window. A retention of zero
// keeps everything.
func (s *Store) prune(ctx context.Context) error {
	if s.keepBatches <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_batches WHERE batch_id NOT IN (
            SELECT batch_id FROM refresh_batches ORDER BY started_at DESC, id DESC LIMIT ?
         )`,
		s.keepBatches,
	)
	if err != nil {
		return fmt.Errorf("prune batches: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
