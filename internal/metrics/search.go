package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchChannelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexsearch",
			Name:      "search_channel_duration_seconds",
			Help:      "Duration of each retrieval channel",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"channel"}, // "vector" / "fulltext" / "normativas"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "ok" / "error"
	)

	RerankFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lexsearch",
			Name:      "rerank_fallbacks_total",
			Help:      "Searches served without reranking because the reranker failed",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchChannelDuration)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(RerankFallbacksTotal)
	searchMetricsRegistered = true
}
