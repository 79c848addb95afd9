package directory

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quotewatch/quotewatch/internal/domain"
)

// SnapshotRepository persists the last successfully loaded universe so a
// failed reload can fall back to it. Rows keep their load order via the
// position column; the table is replaced wholesale on every save.
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates the repository and ensures its schema.
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) (*SnapshotRepository, error) {
	r := &SnapshotRepository{
		db:  db,
		log: log.With().Str("repository", "directory_snapshot").Logger(),
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS companies (
			position INTEGER PRIMARY KEY,
			symbol   TEXT NOT NULL UNIQUE,
			name     TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'Unknown',
			saved_at INTEGER NOT NULL DEFAULT (unixepoch())
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create companies table: %w", err)
	}

	return r, nil
}

// Save replaces the stored snapshot with records, preserving their order.
func (r *SnapshotRepository) Save(records []domain.CompanyRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM companies"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO companies (position, symbol, name, category)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		if _, err := stmt.Exec(i, record.Symbol, record.Name, record.Category); err != nil {
			return fmt.Errorf("failed to insert snapshot row for %s: %w", record.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	r.log.Debug().Int("companies", len(records)).Msg("Directory snapshot saved")
	return nil
}

// Load returns the stored snapshot in its original load order.
func (r *SnapshotRepository) Load() ([]domain.CompanyRecord, error) {
	rows, err := r.db.Query(`
		SELECT symbol, name, category
		FROM companies
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var records []domain.CompanyRecord
	for rows.Next() {
		var record domain.CompanyRecord
		if err := rows.Scan(&record.Symbol, &record.Name, &record.Category); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
