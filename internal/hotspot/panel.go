package hotspot

import (
	"fmt"

	"github.com/crimemap/backend/internal/domain"
)

// FormatCoordinates renders a location with four decimal places
func FormatCoordinates(p domain.LatLng) string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}

// Present derives the detail panel for the selected record.
// ok is false when nothing is selected or the selected record is gone;
// in the latter case the caller should clear the selection.
func Present(snap domain.Snapshot, selectedID string) (view domain.PanelView, ok bool) {
	if selectedID == "" {
		return domain.PanelView{}, false
	}
	r, found := snap.Lookup(selectedID)
	if !found {
		return domain.PanelView{}, false
	}

	c := Classify(r.Intensity)
	return domain.PanelView{
		RecordID:             r.ID,
		Title:                r.Category + " Hotspot",
		Category:             r.Category,
		CoordinatesFormatted: FormatCoordinates(r.Location),
		RiskPercent:          RiskPercent(r.Intensity),
		Tier:                 c.Tier,
		Color:                c.Encoding.StrokeColor,
		OccurrenceCount:      r.OccurrenceCount,
		LastOccurredAt:       r.LastOccurredAt.Format(domain.TimestampLayout),
		DismissAction:        domain.Dismiss(),
	}, true
}
