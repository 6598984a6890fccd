package scoring

import (
	"math"
	"strings"

	"github.com/kailas-cloud/furnidex/internal/domain/product"
)

// Hit weights for category keyword matches. Title mentions carry the most
// signal, then the category line, then the description.
const (
	titleHitWeight       = 2.0
	categoryHitWeight    = 1.5
	descriptionHitWeight = 1.0
)

// CategoryScores scores every item's category affinity for the query.
//
// The matched keyword set is the union of all synonym groups that the
// lowercased query mentions. Each item sums weighted hits of those
// keywords across its title, category line and description, normalized
// by the maximum attainable title score and clamped to 1.0. A query
// mentioning no group scores every item 0.
func CategoryScores(query string, items []product.Product) []float64 {
	scores := make([]float64, len(items))
	matched := matchedCategoryKeywords(strings.ToLower(query))
	if len(matched) == 0 {
		return scores
	}

	maxPossible := float64(len(matched)) * titleHitWeight
	for i := range items {
		title := strings.ToLower(items[i].Title())
		categories := items[i].CategoryLine()
		description := strings.ToLower(items[i].Description())

		var total float64
		for _, kw := range matched {
			if strings.Contains(title, kw) {
				total += titleHitWeight
			}
			if strings.Contains(categories, kw) {
				total += categoryHitWeight
			}
			if strings.Contains(description, kw) {
				total += descriptionHitWeight
			}
		}
		scores[i] = math.Min(total/maxPossible, 1.0)
	}
	return scores
}

// matchedCategoryKeywords collects the deduplicated synonyms of every
// group the query mentions, in taxonomy order.
func matchedCategoryKeywords(queryLower string) []string {
	var matched []string
	seen := make(map[string]struct{})
	for _, group := range categoryGroups {
		if !group.matches(queryLower) {
			continue
		}
		for _, kw := range group.synonyms {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			matched = append(matched, kw)
		}
	}
	return matched
}
