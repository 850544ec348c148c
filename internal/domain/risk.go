package domain

// RiskTier is the discrete bucket derived from a hotspot's intensity
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Rank orders tiers from least to most risky
func (t RiskTier) Rank() int {
	switch t {
	case TierHigh:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

// Encoding is the visual styling applied to a hotspot overlay
type Encoding struct {
	StrokeColor  string  `json:"stroke_color"`
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
	StrokeWeight int     `json:"stroke_weight"`
	Gradient     string  `json:"gradient"`
}

// Classification pairs a tier with its base encoding
type Classification struct {
	Tier     RiskTier `json:"tier"`
	Encoding Encoding `json:"encoding"`
}
