package hotspot

import (
	"github.com/golang/geo/s2"

	"github.com/crimemap/backend/internal/domain"
)

// FitCenter returns the center of the bounding box of all records.
// ok is false for an empty snapshot.
func FitCenter(snap domain.Snapshot) (center domain.LatLng, ok bool) {
	if snap.Len() == 0 {
		return domain.LatLng{}, false
	}
	rect := s2.EmptyRect()
	for _, r := range snap.Records() {
		rect = rect.AddPoint(s2.LatLngFromDegrees(r.Location.Lat, r.Location.Lng))
	}
	c := rect.Center()
	return domain.LatLng{Lat: c.Lat.Degrees(), Lng: c.Lng.Degrees()}, true
}
