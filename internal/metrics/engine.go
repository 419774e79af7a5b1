package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics. The relationship engine recomputes everything
// per request, so computation counts and durations are the signals to watch
// as the corpus grows.
var (
	EngineComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "codex",
			Name:      "engine_computations_total",
			Help:      "Total number of engine computations",
		},
		[]string{"operation"}, // "crossref" / "graph" / "search"
	)

	EngineComputationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "codex",
			Name:      "engine_computation_duration_seconds",
			Help:      "Engine computation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	EngineCorpusSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "codex",
			Name:      "engine_corpus_size",
			Help:      "Number of entries seen in the latest corpus snapshot",
		},
	)

	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "codex",
			Name:      "oracle_requests_total",
			Help:      "Total number of oracle requests",
		},
		[]string{"operation", "status"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineComputationsTotal)
	prometheus.MustRegister(EngineComputationDuration)
	prometheus.MustRegister(EngineCorpusSize)
	prometheus.MustRegister(OracleRequestsTotal)
	engineMetricsRegistered = true
}
