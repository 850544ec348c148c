package domain

// HotspotRadius is the fixed overlay radius in meters
const HotspotRadius = 600.0

// PopupPayload is the label shown when an overlay is opened on the map
type PopupPayload struct {
	Category        string `json:"category"`
	RiskPercent     int    `json:"risk_percent"`
	OccurrenceCount int    `json:"occurrence_count"`
	LastOccurredAt  string `json:"last_occurred_at"`
}

// Overlay describes one circle drawn on the map viewport
type Overlay struct {
	RecordID string       `json:"record_id"`
	Center   LatLng       `json:"center"`
	Radius   float64      `json:"radius"`
	Tier     RiskTier     `json:"tier"`
	Encoding Encoding     `json:"encoding"`
	Hovered  bool         `json:"hovered"`
	Selected bool         `json:"selected"`
	Popup    PopupPayload `json:"popup"`
}

// PanelView is the content of the detail panel for the selected hotspot
type PanelView struct {
	RecordID             string   `json:"record_id"`
	Title                string   `json:"title"`
	Category             string   `json:"category"`
	CoordinatesFormatted string   `json:"coordinates"`
	RiskPercent          int      `json:"risk_percent"`
	Tier                 RiskTier `json:"tier"`
	Color                string   `json:"color"`
	OccurrenceCount      int      `json:"occurrence_count"`
	LastOccurredAt       string   `json:"last_occurred_at"`
	// DismissAction is the event the close button dispatches
	DismissAction Event `json:"dismiss_action"`
}
