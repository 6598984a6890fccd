// Package filters narrows ranked candidates by price, category, material
// and color. Every constraint is an independent intersection; matching is
// case-insensitive substring containment and never reorders input.
package filters

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/kailas-cloud/furnidex/internal/domain/product"
)

// StringList decodes from either a single JSON string or a list of
// strings. The single-string form is kept for callers that filter on one
// category.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

func (s StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s))
}

// Filters holds the optional constraints of a recommendation request.
// Nil pointer and empty list fields mean "no constraint".
type Filters struct {
	MaxPrice   *float64   `json:"max_price,omitempty"`
	MinPrice   *float64   `json:"min_price,omitempty"`
	Categories StringList `json:"categories,omitempty"`
	Material   *string    `json:"material,omitempty"`
	Color      *string    `json:"color,omitempty"`
}

// Empty reports whether no constraint is set.
func (f Filters) Empty() bool {
	return f.MaxPrice == nil && f.MinPrice == nil &&
		len(f.Categories) == 0 && f.Material == nil && f.Color == nil
}

// Match reports whether the product passes every set constraint.
//
// The category constraint matches any requested entry against the raw
// dataset category text, so a request for "Dining" matches items whose
// original category cell mentions it anywhere.
func (f Filters) Match(p *product.Product) bool {
	if f.MaxPrice != nil && p.Price() > *f.MaxPrice {
		return false
	}
	if f.MinPrice != nil && p.Price() < *f.MinPrice {
		return false
	}
	if len(f.Categories) > 0 && !containsAnyFold(p.CategoryText(), f.Categories) {
		return false
	}
	if f.Material != nil && !containsFold(p.Material(), *f.Material) {
		return false
	}
	if f.Color != nil && !containsFold(p.Color(), *f.Color) {
		return false
	}
	return true
}

func containsAnyFold(haystack string, needles []string) bool {
	for _, n := range needles {
		if containsFold(haystack, n) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
