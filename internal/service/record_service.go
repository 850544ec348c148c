package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/internal/metrics"
)

// invalidator is implemented by caching sources
type invalidator interface {
	Invalidate(ctx context.Context) error
}

// RecordService owns the canonical record snapshot.
//
// Loads may overlap. Each load takes a ticket when it starts and the ticket
// becomes the snapshot version; a load finishing after a newer one has been
// published is discarded.
type RecordService struct {
	source RecordSource
	now    func() time.Time

	tickets atomic.Uint64

	mu      sync.RWMutex
	current domain.Snapshot
	diag    hotspot.Diagnostics
}

// NewRecordService creates a record service with an empty snapshot (version 0)
func NewRecordService(source RecordSource) *RecordService {
	return &RecordService{
		source:  source,
		now:     time.Now,
		current: domain.NewSnapshot(nil, 0, time.Time{}),
	}
}

// Load fetches the full record set and publishes it if no newer load won.
// On a fetch error the previous snapshot stays current.
func (s *RecordService) Load(ctx context.Context) (domain.Snapshot, error) {
	ticket := s.tickets.Add(1)

	inputs, err := s.source.FetchRecords(ctx)
	if err != nil {
		metrics.SnapshotLoadsTotal.WithLabelValues("error").Inc()
		return s.Snapshot(), eris.Wrap(err, "records: failed to fetch")
	}

	snap, diag := hotspot.Ingest(inputs, ticket, s.now())

	s.mu.Lock()
	if ticket < s.current.Version {
		current := s.current
		s.mu.Unlock()
		metrics.SnapshotLoadsTotal.WithLabelValues("stale").Inc()
		zap.L().Debug("discarding stale record load",
			zap.Uint64("ticket", ticket), zap.Uint64("current", current.Version))
		return current, nil
	}
	s.current = snap
	s.diag = diag
	s.mu.Unlock()

	reportDiagnostics(snap, diag)
	return snap, nil
}

// Refresh drops any cached copy of the records and loads again
func (s *RecordService) Refresh(ctx context.Context) (domain.Snapshot, error) {
	if inv, ok := s.source.(invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			zap.L().Warn("record cache invalidation failed", zap.Error(err))
		}
	}
	return s.Load(ctx)
}

// Snapshot returns the current snapshot
func (s *RecordService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Diagnostics returns what the last published load had to fix or drop
func (s *RecordService) Diagnostics() hotspot.Diagnostics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diag
}

// Health checks the record source
func (s *RecordService) Health(ctx context.Context) error {
	return s.source.Health(ctx)
}

func reportDiagnostics(snap domain.Snapshot, diag hotspot.Diagnostics) {
	metrics.SnapshotLoadsTotal.WithLabelValues("ok").Inc()
	metrics.RecordsIngested.Set(float64(diag.Accepted))
	metrics.RecordsClampedTotal.Add(float64(diag.Clamped))
	metrics.RecordsRejectedTotal.Add(float64(diag.Rejected))
	metrics.RecordsDuplicateTotal.Add(float64(diag.Duplicates))

	log := zap.L()
	for _, w := range diag.Warnings {
		log.Warn("record ingestion", zap.String("detail", w), zap.Uint64("version", snap.Version))
	}
	log.Info("record snapshot published",
		zap.Uint64("version", snap.Version),
		zap.Int("accepted", diag.Accepted),
		zap.Int("clamped", diag.Clamped),
		zap.Int("rejected", diag.Rejected),
		zap.Int("duplicates", diag.Duplicates),
	)
}
