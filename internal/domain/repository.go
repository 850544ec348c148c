package domain

import (
	"context"
)

// RecordSource supplies the full incident record set.
// Each call returns a complete replacement snapshot, never a diff.
type RecordSource interface {
	// FetchRecords returns every known record in source order
	FetchRecords(ctx context.Context) ([]RecordInput, error)

	// Health checks source connectivity
	Health(ctx context.Context) error
}

// RecordWriter is implemented by sources that can be seeded
type RecordWriter interface {
	UpsertRecords(ctx context.Context, records []IncidentRecord) error
}
