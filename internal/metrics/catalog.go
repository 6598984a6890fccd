package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics, set once after startup ingest.
var (
	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "furnidex",
			Name:      "catalog_products",
			Help:      "Products in the loaded catalog",
		},
	)

	CatalogDimensions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "furnidex",
			Name:      "catalog_embedding_dimensions",
			Help:      "Embedding dimensionality of the loaded catalog",
		},
	)

	CatalogIngestDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "furnidex",
			Name:      "catalog_ingest_duration_seconds",
			Help:      "Wall time of the startup catalog embedding run",
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers Prometheus catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogProducts)
	prometheus.MustRegister(CatalogDimensions)
	prometheus.MustRegister(CatalogIngestDuration)
	catalogMetricsRegistered = true
}
