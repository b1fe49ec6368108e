// Package metrics holds the Prometheus instrumentation for the pipeline and
// its HTTP surface.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docvoice",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "completion_requests_total",
			Help:      "Total number of completion requests by role",
		},
		[]string{"role", "model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docvoice",
			Name:      "completion_request_duration_seconds",
			Help:      "Completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"role", "model"},
	)

	SpeechRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "speech_requests_total",
			Help:      "Total number of speech synthesis requests",
		},
		[]string{"model", "status"},
	)

	CrawlPagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "crawl_pages_total",
			Help:      "Total number of pages emitted by the crawler",
		},
	)

	CrawlCreditsUsed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docvoice",
			Name:      "crawl_credits_used",
			Help:      "Credit units consumed by the most recent crawl job",
		},
	)

	IndexedPagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docvoice",
			Name:      "indexed_pages_total",
			Help:      "Total number of pages upserted into the vector index",
		},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docvoice",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"status"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(SpeechRequestsTotal)
	prometheus.MustRegister(CrawlPagesTotal)
	prometheus.MustRegister(CrawlCreditsUsed)
	prometheus.MustRegister(IndexedPagesTotal)
	prometheus.MustRegister(QueryDuration)
	pipelineMetricsRegistered = true
}
