// Package sqlite mirrors archive rows to a local database so a
// spreadsheet outage never loses a completed session.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nzambu/coachsim/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_exports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	exported_at TEXT NOT NULL,
	identity TEXT NOT NULL,
	persona TEXT NOT NULL,
	transcript TEXT NOT NULL,
	feedback TEXT NOT NULL
);`

// Archive is the durable local mirror of the session archive.
type Archive struct {
	db *sql.DB
}

// NewArchive opens (or creates) the mirror database at path.
func NewArchive(ctx context.Context, path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Append inserts one export row
func (a *Archive) Append(ctx context.Context, record domain.ExportRecord) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO session_exports (exported_at, identity, persona, transcript, feedback)
		 VALUES (?, ?, ?, ?, ?)`,
		record.Timestamp.UTC().Format(time.RFC3339),
		record.Identity,
		record.Persona,
		record.Transcript,
		record.Feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to insert archive row: %w", err)
	}
	return nil
}

// Latest returns the most recently appended row, or nil when empty.
func (a *Archive) Latest(ctx context.Context) (*domain.ExportRecord, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT exported_at, identity, persona, transcript, feedback
		 FROM session_exports ORDER BY id DESC LIMIT 1`)

	var (
		exportedAt string
		record     domain.ExportRecord
	)
	err := row.Scan(&exportedAt, &record.Identity, &record.Persona, &record.Transcript, &record.Feedback)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archive row: %w", err)
	}

	record.Timestamp, err = time.Parse(time.RFC3339, exportedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed archive timestamp: %w", err)
	}

	return &record, nil
}

// Ping verifies the mirror is reachable
func (a *Archive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close releases the database handle
func (a *Archive) Close() error {
	return a.db.Close()
}
