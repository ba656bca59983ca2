package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreshnessScore_Decay(t *testing.T) {
	// Fresh files score near 1, the midpoint sits at 0.5, old files decay
	// toward 0.
	assert.InDelta(t, 0.993, FreshnessScore(0), 0.01)
	assert.InDelta(t, 0.5, FreshnessScore(45), 1e-9)
	assert.Less(t, FreshnessScore(200), 0.01)
}

func TestFreshnessScore_Monotonic(t *testing.T) {
	prev := FreshnessScore(0)
	for days := 5.0; days <= 120; days += 5 {
		cur := FreshnessScore(days)
		assert.Less(t, cur, prev, "score must decrease at %v days", days)
		prev = cur
	}
}

func TestFreshnessScore_Bounds(t *testing.T) {
	for _, days := range []float64{0, 1, 45, 365, 10000} {
		score := FreshnessScore(days)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestFreshnessAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	recent := now.Add(-24 * time.Hour)
	assert.Greater(t, FreshnessAt(recent, now), 0.9)

	old := now.Add(-120 * 24 * time.Hour)
	assert.Less(t, FreshnessAt(old, now), 0.1)

	// Zero revision time yields the neutral score.
	assert.Equal(t, NeutralFreshness, FreshnessAt(time.Time{}, now))

	// A future revision clamps to zero days rather than going above 1.
	future := now.Add(48 * time.Hour)
	assert.InDelta(t, FreshnessScore(0), FreshnessAt(future, now), 1e-9)
}
