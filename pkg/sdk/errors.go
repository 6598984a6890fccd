package furnidex

import (
	"errors"
	"fmt"
)

// Error codes returned by the API in error payloads.
const (
	CodeBadRequest             = "bad_request"
	CodeValidationFailed       = "validation_failed"
	CodeProductNotFound        = "product_not_found"
	CodeCatalogNotReady        = "catalog_not_ready"
	CodeRateLimited            = "rate_limited"
	CodeEmbeddingAuthFailed    = "embedding_auth_failed"
	CodeEmbeddingProviderError = "embedding_provider_error"
	CodeInternalError          = "internal_error"
)

// APIError is a non-2xx API response. Use errors.As to unwrap it.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("furnidex: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
}

// IsNotFound reports whether err is an APIError for a missing product.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeProductNotFound
}
