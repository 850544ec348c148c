package hotspot

import (
	"time"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/pkg/utils"
)

func input(id string, lat, lng, intensity float64) domain.RecordInput {
	return domain.RecordInput{
		ID:              id,
		Lat:             utils.Float64Ptr(lat),
		Lng:             utils.Float64Ptr(lng),
		Intensity:       intensity,
		Category:        "Theft",
		OccurrenceCount: 10,
		LastOccurredAt:  time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC),
	}
}

func burglary() domain.RecordInput {
	return domain.RecordInput{
		ID:              "3",
		Lat:             utils.Float64Ptr(40.7829),
		Lng:             utils.Float64Ptr(-73.9654),
		Intensity:       0.9,
		Category:        "Burglary",
		OccurrenceCount: 312,
		LastOccurredAt:  time.Date(2024, 1, 5, 3, 15, 0, 0, time.UTC),
	}
}

func snapshotOf(inputs ...domain.RecordInput) domain.Snapshot {
	snap, _ := Ingest(inputs, 1, time.Now())
	return snap
}
