package metadata

import (
	"math"
	"time"
)

const (
	// freshnessMidpointDays is the age at which the freshness score crosses 0.5
	freshnessMidpointDays = 45.0
	// freshnessSteepness controls how fast the logistic curve decays
	freshnessSteepness = 9.0

	// NeutralFreshness is substituted when the revision-history query errors
	NeutralFreshness = 0.5
)

// FreshnessScore maps days since last revision onto [0,1] via logistic
// decay: recent files score near 1, files untouched far beyond the midpoint
// decay toward 0.
func FreshnessScore(daysSinceRevision float64) float64 {
	score := 1.0 / (1.0 + math.Exp((daysSinceRevision-freshnessMidpointDays)/freshnessSteepness))
	return clamp01(score)
}

// FreshnessAt computes the freshness score for a revision time relative
// to now. A zero revision time yields the neutral score.
func FreshnessAt(revised, now time.Time) float64 {
	if revised.IsZero() {
		return NeutralFreshness
	}
	days := now.Sub(revised).Hours() / 24
	if days < 0 {
		days = 0
	}
	return FreshnessScore(days)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
