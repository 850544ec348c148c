package service

import (
	"context"
	"sync"
	"time"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/internal/repository/fixtures"
	"github.com/crimemap/backend/pkg/utils"
)

// stubSource returns queued results in order, repeating the last one
type stubSource struct {
	mu      sync.Mutex
	results [][]domain.RecordInput
	err     error
	calls   int
}

func (s *stubSource) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	i := s.calls - 1
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	return s.results[i], nil
}

func (s *stubSource) Health(ctx context.Context) error { return s.err }

func record(id string, intensity float64) domain.RecordInput {
	return domain.RecordInput{
		ID:              id,
		Lat:             utils.Float64Ptr(40.7),
		Lng:             utils.Float64Ptr(-74.0),
		Intensity:       intensity,
		Category:        "Theft",
		OccurrenceCount: 1,
		LastOccurredAt:  time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC),
	}
}

func fixtureSnapshot(version uint64) domain.Snapshot {
	snap, _ := hotspot.Ingest(fixtures.Records(), version, time.Now())
	return snap
}

func snapshotOf(version uint64, inputs ...domain.RecordInput) domain.Snapshot {
	snap, _ := hotspot.Ingest(inputs, version, time.Now())
	return snap
}
