// Package sqlite stores incident records in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/crimemap/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS incident_records (
		position         INTEGER PRIMARY KEY AUTOINCREMENT,
		id               TEXT NOT NULL UNIQUE,
		lat              REAL,
		lng              REAL,
		intensity        REAL NOT NULL DEFAULT 0,
		category         TEXT NOT NULL DEFAULT '',
		occurrence_count INTEGER NOT NULL DEFAULT 0,
		last_occurred_at TEXT NOT NULL
	)
`

// Repository implements domain.RecordSource and domain.RecordWriter on SQLite
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: failed to open %s", path)
	}
	// a single connection keeps :memory: databases consistent
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: failed to enable WAL")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: failed to create incident_records")
	}

	return &Repository{db: db}, nil
}

// Close releases the database handle
func (r *Repository) Close() error {
	return r.db.Close()
}

// FetchRecords loads every incident record in insertion order
func (r *Repository) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, lat, lng, intensity, category, occurrence_count, last_occurred_at
		FROM incident_records
		ORDER BY position
	`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: failed to query incident records")
	}
	defer rows.Close()

	var results []domain.RecordInput
	for rows.Next() {
		var (
			in       domain.RecordInput
			lat, lng sql.NullFloat64
			at       string
		)
		if err := rows.Scan(&in.ID, &lat, &lng, &in.Intensity, &in.Category, &in.OccurrenceCount, &at); err != nil {
			return nil, eris.Wrap(err, "sqlite: failed to scan incident row")
		}
		if lat.Valid {
			in.Lat = &lat.Float64
		}
		if lng.Valid {
			in.Lng = &lng.Float64
		}
		in.LastOccurredAt, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: bad last_occurred_at for record %s", in.ID)
		}
		results = append(results, in)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: failed to read incident rows")
	}

	return results, nil
}

// UpsertRecords inserts or replaces records by id
func (r *Repository) UpsertRecords(ctx context.Context, records []domain.IncidentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO incident_records (
			id, lat, lng, intensity, category, occurrence_count, last_occurred_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			lat = excluded.lat,
			lng = excluded.lng,
			intensity = excluded.intensity,
			category = excluded.category,
			occurrence_count = excluded.occurrence_count,
			last_occurred_at = excluded.last_occurred_at
	`)
	if err != nil {
		return eris.Wrap(err, "sqlite: failed to prepare upsert")
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.ID, rec.Location.Lat, rec.Location.Lng, rec.Intensity, rec.Category,
			rec.OccurrenceCount, rec.LastOccurredAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: failed to upsert record %s", rec.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: failed to commit upsert")
	}
	return nil
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return eris.Wrap(err, "sqlite: health check failed")
	}
	return nil
}
