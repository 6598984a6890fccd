// Package catalog holds the immutable in-memory product catalog with its
// embedding matrix. Built once at startup, read-only afterwards: concurrent
// queries share it without locking.
package catalog

import (
	"fmt"

	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/product"
)

// Catalog is an ordered product list plus a parallel embedding matrix.
// vectors[i] is the embedding of products[i]; all rows share one dimension.
type Catalog struct {
	products []product.Product
	vectors  [][]float32
	byID     map[string]int
	dims     int
}

// New validates alignment and builds a Catalog.
// Every product needs exactly one vector, all vectors must share the same
// dimension, and product identifiers must be unique.
func New(products []product.Product, vectors [][]float32) (*Catalog, error) {
	if len(products) != len(vectors) {
		return nil, fmt.Errorf("catalog: %d products but %d vectors", len(products), len(vectors))
	}

	dims := 0
	byID := make(map[string]int, len(products))
	for i := range products {
		id := products[i].ID()
		if id == "" {
			return nil, fmt.Errorf("catalog: product at index %d has empty id", i)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", id)
		}
		byID[id] = i

		if i == 0 {
			dims = len(vectors[i])
			continue
		}
		if len(vectors[i]) != dims {
			return nil, fmt.Errorf("catalog: vector for %q: %w", id, domain.NewDimensionMismatch(len(vectors[i]), dims))
		}
	}

	return &Catalog{products: products, vectors: vectors, byID: byID, dims: dims}, nil
}

// Empty returns a catalog with zero products. Scoring over it yields empty
// results without errors.
func Empty() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Dims returns the embedding dimension (0 for an empty catalog).
func (c *Catalog) Dims() int { return c.dims }

// At returns the product at position i. Callers must keep i in range.
func (c *Catalog) At(i int) product.Product { return c.products[i] }

// Vector returns the embedding row for position i.
func (c *Catalog) Vector(i int) []float32 { return c.vectors[i] }

// Vectors returns the full embedding matrix, ordered like Products. The
// slice is shared, not copied; callers must treat it as read-only.
func (c *Catalog) Vectors() [][]float32 { return c.vectors }

// Products returns the ordered product list. The slice is shared, not copied;
// callers must treat it as read-only.
func (c *Catalog) Products() []product.Product { return c.products }

// ByID looks up a product by identifier. The boolean reports presence;
// a missing id is not an error.
func (c *Catalog) ByID(id string) (product.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return product.Product{}, false
	}
	return c.products[i], true
}
