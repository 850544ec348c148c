// Package hotspot turns incident records into classified map overlays and
// runs the hover/selection state machine of a map session.
package hotspot

import (
	"github.com/crimemap/backend/internal/domain"
)

// Tier thresholds, inclusive lower bounds
const (
	HighThreshold   = 0.7
	MediumThreshold = 0.4
)

const (
	baseFillOpacity     = 0.35
	baseStrokeWeight    = 2
	hoveredFillOpacity  = 0.5
	hoveredStrokeWeight = 3
)

var tierEncodings = map[domain.RiskTier]domain.Encoding{
	domain.TierHigh:   tierEncoding("#ef4444", "239, 68, 68"),
	domain.TierMedium: tierEncoding("#f59e0b", "245, 158, 11"),
	domain.TierLow:    tierEncoding("#10b981", "16, 185, 129"),
}

func tierEncoding(color, rgb string) domain.Encoding {
	return domain.Encoding{
		StrokeColor:  color,
		FillColor:    color,
		FillOpacity:  baseFillOpacity,
		StrokeWeight: baseStrokeWeight,
		Gradient: "radial-gradient(circle at center, rgba(" + rgb + ", 0.2) 0%, rgba(" +
			rgb + ", 0.1) 50%, transparent 70%)",
	}
}

// Tier maps an intensity to its risk bucket.
// Out-of-range values are not validated; callers clamp at ingestion.
func Tier(intensity float64) domain.RiskTier {
	switch {
	case intensity >= HighThreshold:
		return domain.TierHigh
	case intensity >= MediumThreshold:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

// Classify returns the tier and base encoding for an intensity
func Classify(intensity float64) domain.Classification {
	tier := Tier(intensity)
	return domain.Classification{
		Tier:     tier,
		Encoding: TierEncoding(tier),
	}
}

// TierEncoding returns the base encoding of a tier
func TierEncoding(t domain.RiskTier) domain.Encoding {
	return tierEncodings[t]
}

// Emphasize returns the hovered variant of an encoding
func Emphasize(e domain.Encoding) domain.Encoding {
	e.FillOpacity = hoveredFillOpacity
	e.StrokeWeight = hoveredStrokeWeight
	return e
}
