package pipeline

import (
	"sync"
	"sync/atomic"
)

// Counters track processed requests in memory for the stats endpoint.
// Snapshot copies are cheap; maps stay small (bounded enums).
type Counters struct {
	total           atomic.Int64
	totalDurationMs atomic.Int64

	mu           sync.Mutex
	byCategory   map[string]int64
	byConfidence map[string]int64
}

// NewCounters creates zeroed counters.
func NewCounters() *Counters {
	return &Counters{
		byCategory:   make(map[string]int64),
		byConfidence: make(map[string]int64),
	}
}

func (c *Counters) observe(env *ResponseEnvelope) {
	c.total.Add(1)
	c.totalDurationMs.Add(env.Metadata.DurationMs)

	c.mu.Lock()
	c.byCategory[env.Metadata.Category]++
	c.byConfidence[string(env.Confidence)]++
	c.mu.Unlock()
}

// StatsSnapshot is a point-in-time view of the counters.
type StatsSnapshot struct {
	TotalRequests int64            `json:"total_requests"`
	AvgDurationMs float64          `json:"avg_duration_ms"`
	ByCategory    map[string]int64 `json:"by_category"`
	ByConfidence  map[string]int64 `json:"by_confidence"`
}

// Snapshot returns a copy of the current counters.
func (c *Counters) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		TotalRequests: c.total.Load(),
		ByCategory:    make(map[string]int64),
		ByConfidence:  make(map[string]int64),
	}

	if snap.TotalRequests > 0 {
		snap.AvgDurationMs = float64(c.totalDurationMs.Load()) / float64(snap.TotalRequests)
	}

	c.mu.Lock()
	for k, v := range c.byCategory {
		snap.ByCategory[k] = v
	}
	for k, v := range c.byConfidence {
		snap.ByConfidence[k] = v
	}
	c.mu.Unlock()

	return snap
}
