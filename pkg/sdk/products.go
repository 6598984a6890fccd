package furnidex

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Product is one catalog item.
type Product struct {
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

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
	Products []Product `json:"products"`
}

// Products lists catalog items. skip and limit page through the catalog;
// limit 0 uses the server default.
func (c *Client) Products(ctx context.Context, skip, limit int) (ProductPage, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", q, nil, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// Product fetches one catalog item by id. A missing id returns an
// *APIError that IsNotFound reports true for.
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}
