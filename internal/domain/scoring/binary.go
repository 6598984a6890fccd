package scoring

import (
	"strings"

	"github.com/kailas-cloud/furnidex/internal/domain/product"
)

// MaterialScores flags items whose material or title mentions a material
// named in the query. Scores are binary: 1.0 on any hit, 0 otherwise.
func MaterialScores(query string, items []product.Product) []float64 {
	return binaryScores(query, materialKeywords, items, (*product.Product).Material)
}

// ColorScores is the color counterpart of MaterialScores, matching the
// color field or the title.
func ColorScores(query string, items []product.Product) []float64 {
	return binaryScores(query, colorKeywords, items, (*product.Product).Color)
}

func binaryScores(query string, keywords []string, items []product.Product, field func(*product.Product) string) []float64 {
	scores := make([]float64, len(items))
	matched := containedKeywords(strings.ToLower(query), keywords)
	if len(matched) == 0 {
		return scores
	}
	for i := range items {
		value := strings.ToLower(field(&items[i]))
		title := strings.ToLower(items[i].Title())
		for _, kw := range matched {
			if strings.Contains(value, kw) || strings.Contains(title, kw) {
				scores[i] = 1.0
				break
			}
		}
	}
	return scores
}
