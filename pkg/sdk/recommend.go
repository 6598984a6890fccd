package furnidex

import (
	"context"
	"net/http"
)

// Filters narrows recommendations. Nil pointer and empty list fields
// mean "no constraint".
type Filters struct {
	MaxPrice   *float64 `json:"max_price,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Material   *string  `json:"material,omitempty"`
	Color      *string  `json:"color,omitempty"`
}

// RecommendRequest is a recommendation query.
type RecommendRequest struct {
	Query   string   `json:"query"`
	TopK    int      `json:"top_k,omitempty"`
	Filters *Filters `json:"filters,omitempty"`
}

// Recommendation is one ranked product hit.
type Recommendation struct {
	Product
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// RecommendResult is the ranked answer to one query.
type RecommendResult struct {
	Query                string           `json:"query"`
	Recommendations      []Recommendation `json:"recommendations"`
	TotalMatches         int              `json:"total_matches"`
	LowConfidence        bool             `json:"low_confidence"`
	GeneratedDescription string           `json:"generated_description"`
}

// Recommend asks the engine for products matching a free-text query.
func (c *Client) Recommend(ctx context.Context, req RecommendRequest) (RecommendResult, error) {
	var result RecommendResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/recommend", nil, req, &result); err != nil {
		return RecommendResult{}, err
	}
	return result, nil
}
