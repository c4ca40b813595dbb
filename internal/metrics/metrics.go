package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction paths reported on IntentExtractions
const (
	PathLLM      = "llm"
	PathCache    = "cache"
	PathFallback = "fallback"
)

var (
	IntentExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_intent_extractions_total",
			Help: "Search intents produced, by extraction path",
		},
		[]string{"path"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_intent_llm_request_seconds",
			Help:    "Duration of chat-completion round trips",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Person searches executed, by outcome",
		},
		[]string{"status"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "End-to-end person search duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	APIKeyRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_key_rejections_total",
			Help: "External requests rejected by API-key checks",
		},
		[]string{"reason"},
	)
)
