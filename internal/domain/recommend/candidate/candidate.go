package candidate

import "github.com/kailas-cloud/furnidex/internal/domain/product"

// Candidate is a single ranked hit: a catalog product with its combined
// multi-factor score and the raw text similarity it started from.
type Candidate struct {
	product    product.Product
	score      float64
	similarity float64
}

// New creates a ranked candidate.
func New(p product.Product, score, similarity float64) Candidate {
	return Candidate{product: p, score: score, similarity: similarity}
}

// Product returns the underlying catalog item.
func (c *Candidate) Product() *product.Product { return &c.product }

// Score returns the combined multi-factor score.
func (c *Candidate) Score() float64 { return c.score }

// Similarity returns the raw cosine similarity of the query embedding
// against the item embedding, before keyword weighting.
func (c *Candidate) Similarity() float64 { return c.similarity }
