package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Ingestion cycle latency (seconds)
	IngestCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_cycle_duration_seconds",
			Help:    "Mailbox ingestion cycle duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	// Ingested email counter
	EmailsIngestedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_ingested_count",
			Help: "Total number of mailbox messages processed by ingestion",
		},
		[]string{"outcome"}, // outcome: persisted, duplicate, parse_error, store_error
	)

	// Cache hit/miss counters per view key
	CacheRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_request_count",
			Help: "Cache lookups by key and result",
		},
		[]string{"key", "result"}, // result: hit, miss
	)

	// Degraded cache operations (store unreachable)
	CacheDegradedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_degraded_count",
			Help: "Cache operations absorbed because the cache store failed",
		},
	)

	// Outbound mail counter
	MailSentCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sent_count",
			Help: "Total number of emails relayed through SMTP",
		},
		[]string{"status"}, // status: success, failed
	)
)

// RecordHTTPRequestDuration records one HTTP request's latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordIngestCycleDuration records one ingestion cycle's latency.
func RecordIngestCycleDuration(duration time.Duration) {
	IngestCycleDuration.Observe(duration.Seconds())
}

// IncrementEmailsIngested counts one processed mailbox message.
func IncrementEmailsIngested(outcome string) {
	EmailsIngestedCount.WithLabelValues(outcome).Inc()
}

// IncrementCacheHit counts a cache hit for key.
func IncrementCacheHit(key string) {
	CacheRequestCount.WithLabelValues(key, "hit").Inc()
}

// IncrementCacheMiss counts a cache miss for key.
func IncrementCacheMiss(key string) {
	CacheRequestCount.WithLabelValues(key, "miss").Inc()
}

// IncrementCacheDegraded counts an absorbed cache store failure.
func IncrementCacheDegraded() {
	CacheDegradedCount.Inc()
}

// IncrementMailSent counts one SMTP relay attempt.
func IncrementMailSent(status string) {
	MailSentCount.WithLabelValues(status).Inc()
}
