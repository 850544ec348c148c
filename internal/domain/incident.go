package domain

import (
	"encoding/json"
	"time"

	"github.com/golang/geo/s2"
)

// TimestampLayout is how LastOccurredAt is shown to users: time first, then date
const TimestampLayout = "15:04 2006-01-02"

// LatLng is a WGS84 coordinate pair in degrees
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether the pair lies within [-90,90] / [-180,180]
func (p LatLng) Valid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lng).IsValid()
}

// IncidentRecord is an ingested hotspot. Records are never mutated after ingestion.
type IncidentRecord struct {
	ID              string    `json:"id"`
	Location        LatLng    `json:"location"`
	Intensity       float64   `json:"intensity"`
	Category        string    `json:"category"`
	OccurrenceCount int       `json:"occurrence_count"`
	LastOccurredAt  time.Time `json:"last_occurred_at"`
}

// RecordInput is a record as a source delivers it, before validation.
// Lat/Lng are pointers so a missing location can be told apart from (0,0).
type RecordInput struct {
	ID              string    `json:"id" yaml:"id"`
	Lat             *float64  `json:"lat" yaml:"lat"`
	Lng             *float64  `json:"lng" yaml:"lng"`
	Intensity       float64   `json:"intensity" yaml:"intensity"`
	Category        string    `json:"category" yaml:"category"`
	OccurrenceCount int       `json:"count" yaml:"count"`
	LastOccurredAt  time.Time `json:"last_occurred_at" yaml:"last_occurred_at"`
}

// UnmarshalJSON accepts the id as a JSON string or number; numbers keep
// their decimal text. Any other id shape decodes as empty so ingestion
// rejects that record alone.
func (r *RecordInput) UnmarshalJSON(data []byte) error {
	type plain RecordInput
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = decodeID(aux.ID)
	return nil
}

func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Snapshot is an immutable, id-indexed view of the record set at one point in time
type Snapshot struct {
	Version   uint64
	FetchedAt time.Time

	records []IncidentRecord
	index   map[string]int
}

// NewSnapshot builds a snapshot from already validated, de-duplicated records
func NewSnapshot(records []IncidentRecord, version uint64, fetchedAt time.Time) Snapshot {
	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.ID] = i
	}
	return Snapshot{
		Version:   version,
		FetchedAt: fetchedAt,
		records:   records,
		index:     index,
	}
}

// Records returns the records in input order. Callers must not modify the slice.
func (s Snapshot) Records() []IncidentRecord {
	return s.records
}

// Len returns the number of records
func (s Snapshot) Len() int {
	return len(s.records)
}

// Lookup finds a record by id
func (s Snapshot) Lookup(id string) (IncidentRecord, bool) {
	i, ok := s.index[id]
	if !ok {
		return IncidentRecord{}, false
	}
	return s.records[i], true
}

// Has reports whether id is present
func (s Snapshot) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}
