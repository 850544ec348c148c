package hotspot

import (
	"math"

	"github.com/crimemap/backend/internal/domain"
)

// RiskPercent is the intensity shown as a whole percentage
func RiskPercent(intensity float64) int {
	return int(math.Round(intensity * 100))
}

// Popup projects a record into its map label
func Popup(r domain.IncidentRecord) domain.PopupPayload {
	return domain.PopupPayload{
		Category:        r.Category,
		RiskPercent:     RiskPercent(r.Intensity),
		OccurrenceCount: r.OccurrenceCount,
		LastOccurredAt:  r.LastOccurredAt.Format(domain.TimestampLayout),
	}
}

// Render produces one overlay per record, in snapshot order
func Render(snap domain.Snapshot, state domain.InteractionState) []domain.Overlay {
	records := snap.Records()
	overlays := make([]domain.Overlay, 0, len(records))
	for _, r := range records {
		overlays = append(overlays, RenderOne(r, state))
	}
	return overlays
}

// RenderOne builds the overlay for a single record
func RenderOne(r domain.IncidentRecord, state domain.InteractionState) domain.Overlay {
	c := Classify(r.Intensity)
	hovered := r.ID == state.HoveredID
	enc := c.Encoding
	if hovered {
		enc = Emphasize(enc)
	}
	return domain.Overlay{
		RecordID: r.ID,
		Center:   r.Location,
		Radius:   domain.HotspotRadius,
		Tier:     c.Tier,
		Encoding: enc,
		Hovered:  hovered,
		Selected: r.ID == state.SelectedID,
		Popup:    Popup(r),
	}
}
