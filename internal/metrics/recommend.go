package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "furnidex",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation queries",
		},
		[]string{"confidence"}, // "ok" / "low"
	)

	RecommendationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "furnidex",
			Name:      "recommendation_duration_seconds",
			Help:      "Recommendation pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	RecommendationResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "furnidex",
			Name:      "recommendation_results",
			Help:      "Results returned per recommendation query",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)
)

var recMetricsRegistered bool

// RegisterRecommendMetrics registers Prometheus recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationDuration)
	prometheus.MustRegister(RecommendationResults)
	recMetricsRegistered = true
}
