package furnidex

import (
	"context"
	"net/http"
)

// RangeCount is one price bucket tally.
type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// NameCount is one labeled tally in a breakdown.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Analytics is the catalog insight snapshot.
type Analytics struct {
	TotalProducts        int          `json:"total_products"`
	AvgPrice             float64      `json:"avg_price"`
	MinPrice             float64      `json:"min_price"`
	MaxPrice             float64      `json:"max_price"`
	PriceDistribution    []RangeCount `json:"price_distribution"`
	CategoryBreakdown    []NameCount  `json:"category_breakdown"`
	TopBrands            []NameCount  `json:"top_brands"`
	MaterialDistribution []NameCount  `json:"material_distribution"`
}

// Analytics fetches the catalog analytics snapshot.
func (c *Client) Analytics(ctx context.Context) (Analytics, error) {
	var a Analytics
	if err := c.do(ctx, http.MethodGet, "/api/v1/analytics", nil, nil, &a); err != nil {
		return Analytics{}, err
	}
	return a, nil
}
