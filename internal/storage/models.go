// Package storage persists chat interactions for analytics and QA review.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is one recorded chat exchange. The original query is stored as
// the user typed it; when a follow-up was rewritten before retrieval, the
// rewritten form is kept alongside it.
type Interaction struct {
	ID             uuid.UUID
	Query          string
	RewrittenQuery string
	Category       string
	Confidence     string
	ResponseText   string
	Sources        []string
	TopScore       float64
	DocumentCount  int
	DurationMs     int64
	CreatedAt      time.Time
}

// Stats summarizes recorded interactions.
type Stats struct {
	TotalInteractions int64            `json:"total_interactions"`
	ByCategory        map[string]int64 `json:"by_category"`
	ByConfidence      map[string]int64 `json:"by_confidence"`
	AvgDurationMs     float64          `json:"avg_duration_ms"`
}
