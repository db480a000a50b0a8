package models

import "time"

// SystemMetrics is a lightweight aggregate for operational endpoints that
// should not require a Prometheus scrape.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	SavesTotal               uint64    `json:"savesTotal"`
	SaveFailuresTotal        uint64    `json:"saveFailuresTotal"`
	SaveQueueDepth           int       `json:"saveQueueDepth"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
