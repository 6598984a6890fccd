package chi

import (
	"github.com/kailas-cloud/furnidex/internal/domain/product"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/candidate"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/filters"
	"github.com/kailas-cloud/furnidex/internal/usecase/analytics"
)

// ErrorCode identifies an API error class on the wire.
type ErrorCode string

const (
	ErrorCodeBadRequest             ErrorCode = "bad_request"
	ErrorCodeValidationFailed       ErrorCode = "validation_failed"
	ErrorCodeProductNotFound        ErrorCode = "product_not_found"
	ErrorCodeCatalogNotReady        ErrorCode = "catalog_not_ready"
	ErrorCodeDimensionMismatch      ErrorCode = "dimension_mismatch"
	ErrorCodeRateLimited            ErrorCode = "rate_limited"
	ErrorCodeEmbeddingAuthFailed    ErrorCode = "embedding_auth_failed"
	ErrorCodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	ErrorCodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RecommendRequest is the POST /api/v1/recommend body.
type RecommendRequest struct {
	Query   string           `json:"query"`
	TopK    int              `json:"top_k,omitempty"`
	Filters *filters.Filters `json:"filters,omitempty"`
}

// ProductPayload is the wire form of a catalog product.
type ProductPayload struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`
	Material    string   `json:"material,omitempty"`
	Color       string   `json:"color,omitempty"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// RecommendationItem is one ranked hit with its scores.
type RecommendationItem struct {
	ProductPayload
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// RecommendResponse is the POST /api/v1/recommend payload.
type RecommendResponse struct {
	Query                string               `json:"query"`
	Recommendations      []RecommendationItem `json:"recommendations"`
	TotalMatches         int                  `json:"total_matches"`
	LowConfidence        bool                 `json:"low_confidence"`
	GeneratedDescription string               `json:"generated_description"`
}

// ProductListResponse is the GET /api/v1/products payload.
type ProductListResponse struct {
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
	Products []ProductPayload `json:"products"`
}

// RangeCountPayload is one price bucket tally on the wire.
type RangeCountPayload struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// NameCountPayload is one labeled tally on the wire.
type NameCountPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnalyticsResponse is the GET /api/v1/analytics payload.
type AnalyticsResponse struct {
	TotalProducts        int                 `json:"total_products"`
	AvgPrice             float64             `json:"avg_price"`
	MinPrice             float64             `json:"min_price"`
	MaxPrice             float64             `json:"max_price"`
	PriceDistribution    []RangeCountPayload `json:"price_distribution"`
	CategoryBreakdown    []NameCountPayload  `json:"category_breakdown"`
	TopBrands            []NameCountPayload  `json:"top_brands"`
	MaterialDistribution []NameCountPayload  `json:"material_distribution"`
}

// InfoResponse is the GET / payload.
type InfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Commit    string            `json:"commit"`
	Products  int               `json:"products"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func productToPayload(p *product.Product) ProductPayload {
	return ProductPayload{
		ID:          p.ID(),
		Title:       p.Title(),
		Brand:       p.Brand(),
		Description: p.Description(),
		Categories:  p.Categories(),
		Material:    p.Material(),
		Color:       p.Color(),
		Price:       p.Price(),
		ImageURL:    p.FirstImage(),
	}
}

func candidateToItem(c *candidate.Candidate) RecommendationItem {
	return RecommendationItem{
		ProductPayload: productToPayload(c.Product()),
		Score:          c.Score(),
		Similarity:     c.Similarity(),
	}
}

func statsToResponse(s analytics.Stats) AnalyticsResponse {
	resp := AnalyticsResponse{
		TotalProducts:        s.TotalProducts,
		AvgPrice:             s.AvgPrice,
		MinPrice:             s.MinPrice,
		MaxPrice:             s.MaxPrice,
		PriceDistribution:    make([]RangeCountPayload, len(s.PriceDistribution)),
		CategoryBreakdown:    nameCounts(s.CategoryBreakdown),
		TopBrands:            nameCounts(s.TopBrands),
		MaterialDistribution: nameCounts(s.MaterialDistribution),
	}
	for i, r := range s.PriceDistribution {
		resp.PriceDistribution[i] = RangeCountPayload{Range: r.Range, Count: r.Count}
	}
	return resp
}

func nameCounts(in []analytics.NameCount) []NameCountPayload {
	out := make([]NameCountPayload, len(in))
	for i, c := range in {
		out[i] = NameCountPayload{Name: c.Name, Count: c.Count}
	}
	return out
}
