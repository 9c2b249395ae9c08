package retrieval

// Tier is the discrete confidence bucket derived from retrieval results.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Thresholds hold the configurable cut-offs for confidence scoring.
type Thresholds struct {
	High         float64
	Medium       float64
	Low          float64
	MinDocuments int
}

// DefaultThresholds returns the standard scoring configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		High:         0.50,
		Medium:       0.35,
		Low:          0.20,
		MinDocuments: 2,
	}
}

// Score maps a top similarity score and result count to a confidence tier.
// The high tier requires both a high score and at least MinDocuments hits;
// a single excellent match falls through to the medium check on score alone.
func (t Thresholds) Score(topScore float64, documentCount int) Tier {
	if documentCount == 0 || topScore < t.Low {
		return TierLow
	}
	if topScore >= t.High && documentCount >= t.MinDocuments {
		return TierHigh
	}
	if topScore >= t.Medium {
		return TierMedium
	}
	return TierLow
}
