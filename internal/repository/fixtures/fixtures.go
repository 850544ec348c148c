package fixtures

import (
	"context"
	"time"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/pkg/utils"
)

// Source implements domain.RecordSource with static demo hotspots in Manhattan
type Source struct{}

// NewSource creates a new fixture source
func NewSource() *Source {
	return &Source{}
}

// FetchRecords returns the demo hotspots
func (s *Source) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	return Records(), nil
}

// Health always returns nil for static data
func (s *Source) Health(ctx context.Context) error {
	return nil
}

// Records returns a fresh copy of the demo hotspots
func Records() []domain.RecordInput {
	return []domain.RecordInput{
		{
			ID:              "1",
			Lat:             utils.Float64Ptr(40.7128),
			Lng:             utils.Float64Ptr(-74.006),
			Intensity:       0.8,
			Category:        "Theft",
			OccurrenceCount: 245,
			LastOccurredAt:  time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:              "2",
			Lat:             utils.Float64Ptr(40.758),
			Lng:             utils.Float64Ptr(-73.9855),
			Intensity:       0.6,
			Category:        "Assault",
			OccurrenceCount: 156,
			LastOccurredAt:  time.Date(2024, 1, 4, 23, 45, 0, 0, time.UTC),
		},
		{
			ID:              "3",
			Lat:             utils.Float64Ptr(40.7829),
			Lng:             utils.Float64Ptr(-73.9654),
			Intensity:       0.9,
			Category:        "Burglary",
			OccurrenceCount: 312,
			LastOccurredAt:  time.Date(2024, 1, 5, 3, 15, 0, 0, time.UTC),
		},
	}
}
