package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding and search Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assistant",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	// SearchStrategyTotal counts which fallback strategy produced the
	// response for each search: fuzzy, semantic, keyword_terms, keyword_raw,
	// or none.
	SearchStrategyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "search_strategy_total",
			Help:      "Search invocations by winning fallback strategy",
		},
		[]string{"strategy"},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Name:      "completion_requests_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"model", "status"},
	)
)

var coreMetricsRegistered bool

// RegisterCoreMetrics registers the embedding, search, and completion
// metrics. Must be called once from main.
func RegisterCoreMetrics() {
	if coreMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(SearchStrategyTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	coreMetricsRegistered = true
}
