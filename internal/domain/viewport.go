package domain

// Viewport is the map surface the engine draws into.
// Tile loading, projection and pan/zoom live entirely behind it.
type Viewport interface {
	Draw(center LatLng, zoom int, overlays []Overlay)
	Recenter()
	ToggleOverlayVisibility()
}

// ViewportState is what a viewport last drew, as reported to the shell
type ViewportState struct {
	Center          LatLng  `json:"center"`
	Zoom            int     `json:"zoom"`
	FitCenter       *LatLng `json:"fit_center,omitempty"`
	OverlaysVisible bool    `json:"overlays_visible"`
	Recenters       int     `json:"recenters"`
}

// NewYorkCenter is the default home position of the crime map
var NewYorkCenter = LatLng{Lat: 40.7128, Lng: -74.006}

// DefaultZoom is the initial zoom level of a mounted map
const DefaultZoom = 13
