// Package analytics records what users search for. Events are batched to a
// Kafka topic and also folded into in-process aggregates served over HTTP.
package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventZeroResult EventType = "zero_result"
)

// SearchEvent describes one answered query.
type SearchEvent struct {
	Type      EventType `json:"type"`
	Query     string    `json:"query"`
	Terms     []string  `json:"terms"`
	TotalHits int       `json:"total_hits"`
	Returned  int       `json:"returned"`
	LatencyMs int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Tracker accepts search events without blocking the caller.
type Tracker interface {
	Track(event SearchEvent)
}

// Multi fans an event out to several trackers.
type Multi []Tracker

func (m Multi) Track(event SearchEvent) {
	for _, t := range m {
		t.Track(event)
	}
}
