package service

import (
	"sort"
	"time"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/pkg/utils"
)

var categoryColors = map[string]string{
	"Theft":    "#3b82f6",
	"Assault":  "#ef4444",
	"Burglary": "#f59e0b",
	"Robbery":  "#10b981",
}

const otherCategoryColor = "#94a3b8"

// AnalyticsService feeds the analytics dashboard from the current record snapshot
type AnalyticsService struct {
	records *RecordService
	now     func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(records *RecordService) *AnalyticsService {
	return &AnalyticsService{records: records, now: time.Now}
}

// GetSummary aggregates the current snapshot
func (s *AnalyticsService) GetSummary() domain.AnalyticsSummary {
	summary := Summarize(s.records.Snapshot())
	summary.Timestamp = s.now()
	return summary
}

// Summarize computes dashboard series for a snapshot
func Summarize(snap domain.Snapshot) domain.AnalyticsSummary {
	var (
		total      int
		riskSum    float64
		byCategory = map[string]int{}
		byMonth    = map[time.Time]int{}
		byTier     = map[domain.RiskTier]int{}
	)

	for _, r := range snap.Records() {
		total += r.OccurrenceCount
		riskSum += r.Intensity
		byCategory[r.Category] += r.OccurrenceCount
		byTier[hotspot.Tier(r.Intensity)]++

		if !r.LastOccurredAt.IsZero() {
			t := r.LastOccurredAt
			byMonth[time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)]++
		}
	}

	summary := domain.AnalyticsSummary{
		TotalIncidents:  total,
		HotspotCount:    snap.Len(),
		HighRiskAreas:   byTier[domain.TierHigh],
		ByCategory:      categorySeries(byCategory),
		ByMonth:         monthSeries(byMonth),
		ByTier:          tierSeries(byTier),
		SnapshotVersion: snap.Version,
	}
	if snap.Len() > 0 {
		summary.AverageRiskPercent = int(utils.RoundTo(riskSum/float64(snap.Len())*100, 0))
	}
	return summary
}

func categorySeries(counts map[string]int) []domain.SeriesPoint {
	series := make([]domain.SeriesPoint, 0, len(counts))
	for label, v := range counts {
		color, ok := categoryColors[label]
		if !ok {
			color = otherCategoryColor
		}
		series = append(series, domain.SeriesPoint{Label: label, Value: v, Color: color})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Value != series[j].Value {
			return series[i].Value > series[j].Value
		}
		return series[i].Label < series[j].Label
	})
	return series
}

func monthSeries(counts map[time.Time]int) []domain.SeriesPoint {
	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]domain.SeriesPoint, 0, len(months))
	for _, m := range months {
		series = append(series, domain.SeriesPoint{Label: m.Format("Jan 2006"), Value: counts[m]})
	}
	return series
}

func tierSeries(counts map[domain.RiskTier]int) []domain.SeriesPoint {
	tiers := []domain.RiskTier{domain.TierHigh, domain.TierMedium, domain.TierLow}
	series := make([]domain.SeriesPoint, 0, len(tiers))
	for _, t := range tiers {
		series = append(series, domain.SeriesPoint{
			Label: string(t),
			Value: counts[t],
			Color: hotspot.TierEncoding(t).StrokeColor,
		})
	}
	return series
}
