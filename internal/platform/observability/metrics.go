package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for request status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	MentionsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_mentions_ingested_total",
		Help: "The total number of ingested mentions",
	}, []string{"engine"})

	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_classifications_total",
		Help: "The total number of classification calls by outcome",
	}, []string{"outcome"})

	ExternalClassifierRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_external_classifier_requests_total",
		Help: "The total number of external classifier requests",
	}, []string{"status"})

	ExternalClassifierDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brandpulse_external_classifier_duration_seconds",
		Help:    "Duration of external classifier requests",
		Buckets: prometheus.DefBuckets,
	})

	ClassificationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandpulse_classification_cache_hits_total",
		Help: "The total number of strategic grouping cache hits",
	})

	ClassificationCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brandpulse_classification_cache_misses_total",
		Help: "The total number of strategic grouping cache misses",
	})

	RecategorizeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_recategorize_changes_total",
		Help: "The total number of recategorization outcomes by kind",
	}, []string{"kind"})

	PollRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brandpulse_poll_runs_total",
		Help: "The total number of ingestion poll runs by status",
	}, []string{"status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brandpulse_api_request_duration_seconds",
		Help:    "Duration of API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// Classification outcome label values.
const (
	OutcomeRuleBased     = "rule_based"
	OutcomeDisambiguated = "disambiguated"
	OutcomeExternal      = "external"
	OutcomeFallback      = "fallback"
	OutcomeEmpty         = "empty"
)

// Recategorization outcome label values.
const (
	RecatUpdated        = "updated"
	RecatUnchanged      = "unchanged"
	RecatUnclassifiable = "unclassifiable"
	RecatFailed         = "failed"
)
