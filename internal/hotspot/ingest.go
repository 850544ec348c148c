package hotspot

import (
	"fmt"
	"math"
	"time"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/pkg/utils"
)

// Diagnostics counts the records that ingestion had to fix or drop
type Diagnostics struct {
	Accepted   int      `json:"accepted"`
	Clamped    int      `json:"clamped"`
	Rejected   int      `json:"rejected"`
	Duplicates int      `json:"duplicates"`
	Warnings   []string `json:"warnings,omitempty"`
}

func (d *Diagnostics) warn(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Ingest validates raw inputs into a snapshot.
//
// Intensity is clamped to [0,1]. Records without an id or a valid location
// are dropped. When ids repeat, the last occurrence wins and keeps its position.
func Ingest(inputs []domain.RecordInput, version uint64, fetchedAt time.Time) (domain.Snapshot, Diagnostics) {
	var diag Diagnostics

	last := make(map[string]int, len(inputs))
	for i, in := range inputs {
		if in.ID != "" {
			last[in.ID] = i
		}
	}

	records := make([]domain.IncidentRecord, 0, len(inputs))
	for i, in := range inputs {
		if in.ID == "" {
			diag.Rejected++
			diag.warn("record #%d: missing id", i)
			continue
		}
		if last[in.ID] != i {
			diag.Duplicates++
			diag.warn("record %q: duplicate id, superseded by a later record", in.ID)
			continue
		}
		if in.Lat == nil || in.Lng == nil {
			diag.Rejected++
			diag.warn("record %q: missing location", in.ID)
			continue
		}
		loc := domain.LatLng{Lat: *in.Lat, Lng: *in.Lng}
		if !loc.Valid() {
			diag.Rejected++
			diag.warn("record %q: location %.4f, %.4f out of range", in.ID, loc.Lat, loc.Lng)
			continue
		}

		intensity := in.Intensity
		if math.IsNaN(intensity) {
			intensity = 0
		}
		intensity = utils.Clamp(intensity, 0, 1)
		if intensity != in.Intensity {
			diag.Clamped++
			diag.warn("record %q: intensity %g clamped to %g", in.ID, in.Intensity, intensity)
		}

		count := in.OccurrenceCount
		if count < 0 {
			diag.warn("record %q: negative occurrence count %d treated as 0", in.ID, count)
			count = 0
		}

		records = append(records, domain.IncidentRecord{
			ID:              in.ID,
			Location:        loc,
			Intensity:       intensity,
			Category:        in.Category,
			OccurrenceCount: count,
			LastOccurredAt:  in.LastOccurredAt,
		})
	}

	diag.Accepted = len(records)
	return domain.NewSnapshot(records, version, fetchedAt), diag
}
