package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordsIngested = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "crimemap_records_ingested",
		Help: "Records in the current snapshot",
	})
	RecordsClampedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimemap_records_clamped_total",
		Help: "Records whose intensity was clamped to [0,1]",
	})
	RecordsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimemap_records_rejected_total",
		Help: "Records dropped for a missing id or location",
	})
	RecordsDuplicateTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimemap_records_duplicate_total",
		Help: "Records superseded by a later record with the same id",
	})
	SnapshotLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimemap_snapshot_loads_total",
		Help: "Record source loads by outcome",
	}, []string{"outcome"})
	EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimemap_events_total",
		Help: "Interaction events dispatched by type",
	}, []string{"type"})
	StaleReferencesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crimemap_stale_references_total",
		Help: "Events or selections that referenced a record missing from the snapshot",
	})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "crimemap_active_sessions",
		Help: "Mounted map sessions",
	})
)

func init() {
	prometheus.MustRegister(RecordsIngested)
	prometheus.MustRegister(RecordsClampedTotal)
	prometheus.MustRegister(RecordsRejectedTotal)
	prometheus.MustRegister(RecordsDuplicateTotal)
	prometheus.MustRegister(SnapshotLoadsTotal)
	prometheus.MustRegister(EventsTotal)
	prometheus.MustRegister(StaleReferencesTotal)
	prometheus.MustRegister(ActiveSessions)
}
