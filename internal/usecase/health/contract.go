package health

import "context"

// CatalogSource reports the size of the loaded catalog.
type CatalogSource interface {
	Len() int
}

// CachePinger checks embedding-cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
