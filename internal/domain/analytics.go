package domain

import "time"

// SeriesPoint is one bar/slice of a chart series
type SeriesPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

// AnalyticsSummary aggregates a snapshot for the analytics dashboard
type AnalyticsSummary struct {
	TotalIncidents     int           `json:"total_incidents"`
	HotspotCount       int           `json:"hotspot_count"`
	HighRiskAreas      int           `json:"high_risk_areas"`
	AverageRiskPercent int           `json:"average_risk_percent"`
	ByCategory         []SeriesPoint `json:"by_category"`
	ByMonth            []SeriesPoint `json:"by_month"`
	ByTier             []SeriesPoint `json:"by_tier"`
	SnapshotVersion    uint64        `json:"snapshot_version"`
	Timestamp          time.Time     `json:"timestamp"`
}
