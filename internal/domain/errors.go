package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidRequest signals a request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmptyQuery signals a blank recommendation query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrDimensionMismatch signals a vector dimension mismatch.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrCatalogNotReady signals that the catalog has not finished loading.
	ErrCatalogNotReady = errors.New("catalog not ready")
	// ErrEmptyCatalog signals a catalog with zero products.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingAuthFailed signals rejected embedding provider credentials.
	ErrEmbeddingAuthFailed = errors.New("embedding auth failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// DimensionMismatchError wraps ErrDimensionMismatch with the observed and expected sizes.
type DimensionMismatchError struct {
	Got  int
	Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: got %d, want %d", ErrDimensionMismatch.Error(), e.Got, e.Want)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NewDimensionMismatch creates a dimension mismatch error.
func NewDimensionMismatch(got, want int) error {
	return &DimensionMismatchError{Got: got, Want: want}
}
