package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Tiers(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		topScore float64
		count    int
		want     Tier
	}{
		{"strong match with corroboration", 0.72, 4, TierHigh},
		{"exactly at high threshold and min docs", 0.50, 2, TierHigh},
		{"strong match but single document", 0.72, 1, TierMedium},
		{"just under high threshold", 0.49, 5, TierMedium},
		{"exactly at medium threshold", 0.35, 1, TierMedium},
		{"just under medium threshold", 0.34, 3, TierLow},
		{"exactly at low threshold", 0.20, 3, TierLow},
		{"below low threshold", 0.19, 5, TierLow},
		{"no documents", 0.95, 0, TierLow},
		{"zero score", 0.0, 3, TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Score(tt.topScore, tt.count))
		})
	}
}

func TestScore_HighTierRequiresBothConditions(t *testing.T) {
	th := Thresholds{High: 0.6, Medium: 0.4, Low: 0.2, MinDocuments: 3}

	// Score alone is not enough.
	assert.Equal(t, TierMedium, th.Score(0.9, 2))
	// Count alone is not enough.
	assert.Equal(t, TierMedium, th.Score(0.59, 10))
	// Both together.
	assert.Equal(t, TierHigh, th.Score(0.6, 3))
}
