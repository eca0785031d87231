// Package store provides the SQLite archive for event log entries evicted
// by a capacity-bounded log. Nothing is read back into the dashboard at
// startup; the archive exists for later inspection only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/pulse/internal/eventlog"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Archive provides SQLite-backed storage of evicted log entries.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the archive database at the given path.
func Open(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Archive{db: db, now: time.Now}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Archive stores entries in one transaction, preserving their order.
func (a *Archive) Archive(ctx context.Context, entries []eventlog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO log_archive
		(title, subtitle, logged_at, archived_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare archive insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	archivedAt := a.now().UTC().Format(time.RFC3339Nano)
	for _, e := range entries {
		loggedAt := e.At.UTC().Format(time.RFC3339Nano)
		if _, err := stmt.ExecContext(ctx, e.Title, e.Subtitle, loggedAt, archivedAt); err != nil {
			return fmt.Errorf("archive entry %q: %w", e.Title, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to n archived entries, newest first.
func (a *Archive) Recent(ctx context.Context, n int) ([]eventlog.Entry, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT title, subtitle, logged_at
		FROM log_archive ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []eventlog.Entry
	for rows.Next() {
		var e eventlog.Entry
		var loggedAt string
		if err := rows.Scan(&e.Title, &e.Subtitle, &loggedAt); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339Nano, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at %q: %w", loggedAt, err)
		}
		e.At = at
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of archived entries.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM log_archive").Scan(&count)
	return count, err
}
