// Package product defines the catalog product aggregate.
package product

import (
	"fmt"
	"strings"
)

// MaxCategories is the number of cleaned category entries kept per product.
const MaxCategories = 3

// Product is a cleaned catalog record (immutable value object).
type Product struct {
	id           string
	title        string
	brand        string
	description  string
	categoryText string
	categories   []string
	material     string
	color        string
	price        float64
	images       []string
}

// Params carries the fields for building a Product.
type Params struct {
	ID           string
	Title        string
	Brand        string
	Description  string
	CategoryText string   // raw category cell as it appeared in the dataset
	Categories   []string // cleaned list, first MaxCategories entries
	Material     string
	Color        string
	Price        float64
	Images       []string
}

// New validates and creates a Product.
// Material and color are normalized to lowercased, trimmed form; the cleaned
// category list is capped at MaxCategories. Price must be non-negative —
// records with unparsable prices never reach the domain (the loader drops them).
func New(p Params) (Product, error) {
	if p.ID == "" {
		return Product{}, fmt.Errorf("product ID is required")
	}
	if p.Title == "" {
		return Product{}, fmt.Errorf("product title is required")
	}
	if p.Price < 0 {
		return Product{}, fmt.Errorf("product price must be non-negative, got %v", p.Price)
	}

	brand := strings.TrimSpace(p.Brand)
	if brand == "" {
		brand = "Unknown"
	}

	cats := p.Categories
	if len(cats) > MaxCategories {
		cats = cats[:MaxCategories]
	}

	return Product{
		id:           p.ID,
		title:        p.Title,
		brand:        brand,
		description:  p.Description,
		categoryText: p.CategoryText,
		categories:   cloneStrings(cats),
		material:     strings.ToLower(strings.TrimSpace(p.Material)),
		color:        strings.ToLower(strings.TrimSpace(p.Color)),
		price:        p.Price,
		images:       cloneStrings(p.Images),
	}, nil
}

// Reconstruct creates a Product without validation (hydration of pre-cleaned rows).
func Reconstruct(p Params) Product {
	return Product{
		id:           p.ID,
		title:        p.Title,
		brand:        p.Brand,
		description:  p.Description,
		categoryText: p.CategoryText,
		categories:   p.Categories,
		material:     p.Material,
		color:        p.Color,
		price:        p.Price,
		images:       p.Images,
	}
}

// ID returns the unique product identifier.
func (p *Product) ID() string { return p.id }

// Title returns the product title.
func (p *Product) Title() string { return p.title }

// Brand returns the product brand ("Unknown" when the dataset had none).
func (p *Product) Brand() string { return p.brand }

// Description returns the product description text.
func (p *Product) Description() string { return p.description }

// CategoryText returns the raw category text from the dataset.
func (p *Product) CategoryText() string { return p.categoryText }

// Categories returns the cleaned category list (at most MaxCategories entries).
func (p *Product) Categories() []string { return p.categories }

// PrimaryCategory returns the first cleaned category, or "" when none exist.
func (p *Product) PrimaryCategory() string {
	if len(p.categories) == 0 {
		return ""
	}
	return p.categories[0]
}

// CategoryLine returns the cleaned categories joined by ", ", lowercased.
// Keyword scoring matches against this form.
func (p *Product) CategoryLine() string {
	return strings.ToLower(strings.Join(p.categories, ", "))
}

// Material returns the lowercased, trimmed material.
func (p *Product) Material() string { return p.material }

// Color returns the lowercased, trimmed color.
func (p *Product) Color() string { return p.color }

// Price returns the non-negative product price.
func (p *Product) Price() float64 { return p.price }

// Images returns the product image URLs.
func (p *Product) Images() []string { return p.images }

// FirstImage returns the first image URL, or "" when none exist.
func (p *Product) FirstImage() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[0]
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
