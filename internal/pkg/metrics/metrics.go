package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts how many content items have been stored as new records.
var ContentStored = promauto.NewCounter(prometheus.CounterOpts{
	Name: "newsletter_content_stored_total",
	Help: "Total number of new content records written to the store",
})

// Counts store calls resolved to an existing record by URL hash.
var URLDuplicates = promauto.NewCounter(prometheus.CounterOpts{
	Name: "newsletter_url_duplicates_total",
	Help: "Total number of store calls deduplicated by URL hash",
})

// Counts store calls resolved to an existing record by content fingerprint.
var FingerprintDuplicates = promauto.NewCounter(prometheus.CounterOpts{
	Name: "newsletter_fingerprint_duplicates_total",
	Help: "Total number of store calls deduplicated by content fingerprint",
})

// Counts record files removed by the TTL sweep.
var RecordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "newsletter_records_deleted_total",
	Help: "Total number of record files removed by cleanup",
})

// Counts unreadable records skipped during bulk scans.
var CorruptRecordsSkipped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "newsletter_corrupt_records_skipped_total",
	Help: "Total number of records skipped during list or index rebuild",
})

// Counts atomic write or rename failures.
var WriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "newsletter_write_failures_total",
	Help: "Total number of failed record writes",
})

// Measures how long the startup index rebuild scan takes.
var IndexRebuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "newsletter_index_rebuild_seconds",
	Help:    "Time taken to rebuild the dedup index from disk",
	Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
})

// Ingest pipeline metrics
var (
	ItemsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsletter_items_enqueued_total",
		Help: "Total number of ingest items accepted into the queue",
	})

	ItemsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsletter_items_processed_total",
		Help: "Total number of ingest items processed successfully",
	})

	SpamItemsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsletter_spam_items_skipped_total",
		Help: "Total number of ingest items rejected by the spam gate",
	})

	NonEnglishItemsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsletter_non_english_items_skipped_total",
		Help: "Total number of ingest items skipped as non-English",
	})

	LanguageDetectionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsletter_language_detection_failures_total",
		Help: "Total number of items whose language could not be detected",
	})

	LanguageDetectionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsletter_language_detection_seconds",
		Help:    "Time taken to detect the language of an ingest item",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	SpamScoreHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsletter_spam_score",
		Help:    "Spam scores of ingested items",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
)

// Tracks circuit breaker state per guarded service (0 closed, 1 half-open, 2 open).
var CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "newsletter_circuit_breaker_state",
	Help: "State of the circuit breaker guarding an external dependency",
}, []string{"service"})
