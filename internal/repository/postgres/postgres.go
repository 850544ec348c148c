package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/crimemap/backend/internal/domain"
)

// Pool is the subset of pgxpool.Pool the repository uses
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

const schema = `
	CREATE TABLE IF NOT EXISTS incident_records (
		id               TEXT PRIMARY KEY,
		lat              DOUBLE PRECISION,
		lng              DOUBLE PRECISION,
		intensity        DOUBLE PRECISION NOT NULL DEFAULT 0,
		category         TEXT NOT NULL DEFAULT '',
		occurrence_count INTEGER NOT NULL DEFAULT 0,
		last_occurred_at TIMESTAMPTZ NOT NULL,
		position         SERIAL
	)
`

// PostgresRepository implements domain.RecordSource and domain.RecordWriter
type PostgresRepository struct {
	pool Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the incident_records table if needed
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return eris.Wrap(err, "postgres: failed to create incident_records")
	}
	return nil
}

// FetchRecords loads every incident record in insertion order
func (r *PostgresRepository) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	query := `
		SELECT id, lat, lng, intensity, category, occurrence_count, last_occurred_at
		FROM incident_records
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: failed to query incident records")
	}
	defer rows.Close()

	var results []domain.RecordInput
	for rows.Next() {
		var in domain.RecordInput
		err := rows.Scan(
			&in.ID, &in.Lat, &in.Lng, &in.Intensity, &in.Category,
			&in.OccurrenceCount, &in.LastOccurredAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: failed to scan incident row")
		}
		results = append(results, in)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: failed to read incident rows")
	}

	return results, nil
}

// UpsertRecords inserts or replaces records by id
func (r *PostgresRepository) UpsertRecords(ctx context.Context, records []domain.IncidentRecord) error {
	query := `
		INSERT INTO incident_records (
			id, lat, lng, intensity, category, occurrence_count, last_occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			intensity = EXCLUDED.intensity,
			category = EXCLUDED.category,
			occurrence_count = EXCLUDED.occurrence_count,
			last_occurred_at = EXCLUDED.last_occurred_at
	`

	for _, rec := range records {
		_, err := r.pool.Exec(ctx, query,
			rec.ID, rec.Location.Lat, rec.Location.Lng, rec.Intensity, rec.Category,
			rec.OccurrenceCount, rec.LastOccurredAt,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: failed to upsert record %s", rec.ID)
		}
	}

	return nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return eris.Wrap(err, "postgres: health check failed")
	}
	return nil
}
