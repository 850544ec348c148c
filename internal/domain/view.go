package domain

// View is a top-level screen of the application
type View string

const (
	ViewMap       View = "map"
	ViewDashboard View = "dashboard"
)

// MenuItem is an entry in the navigation sidebar
type MenuItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Navigation is the static sidebar content
type Navigation struct {
	Views       []MenuItem `json:"views"`
	MapControls []MenuItem `json:"map_controls"`
}

// DefaultNavigation returns the sidebar menu
func DefaultNavigation() Navigation {
	return Navigation{
		Views: []MenuItem{
			{
				ID:          string(ViewMap),
				Label:       "Crime Map",
				Icon:        "🗺️",
				Title:       "Crime Hotspots Map",
				Description: "Interactive visualization of crime hotspots and risk areas",
			},
			{
				ID:          string(ViewDashboard),
				Label:       "Analytics",
				Icon:        "📊",
				Title:       "Analytics Dashboard",
				Description: "Comprehensive crime statistics and trends analysis",
			},
		},
		MapControls: []MenuItem{
			{ID: "heatmap", Label: "Heatmap View", Icon: "🌡️"},
			{ID: "clusters", Label: "Cluster View", Icon: "📍"},
			{ID: "predictions", Label: "Predictions", Icon: "📈"},
			{ID: "filters", Label: "Time Filters", Icon: "⏱️"},
		},
	}
}
