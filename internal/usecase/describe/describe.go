// Package describe renders the short natural-language summary that
// accompanies a recommendation response.
package describe

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/furnidex/internal/domain/recommend/candidate"
)

const (
	// highlightThreshold gates the top-result callout on combined score.
	highlightThreshold = 0.6
	// featureWindow caps how many leading results contribute materials
	// and categories to the summary.
	featureWindow = 3
	// maxMaterials caps the materials named in the construction sentence.
	maxMaterials = 2

	noMatches = "We couldn't find exact matches for your search. Try different keywords or adjust your filters."
)

// Generate renders a summary of the ranked results for the query: an
// opening count, a top-result callout when its score is convincing, the
// leading materials, and the dominant category.
func Generate(cands []candidate.Candidate, query string) string {
	if len(cands) == 0 {
		return noMatches
	}

	parts := make([]string, 0, 4)
	if len(cands) == 1 {
		parts = append(parts, fmt.Sprintf("Found 1 great match for '%s'.", query))
	} else {
		parts = append(parts, fmt.Sprintf("Found %d excellent matches for '%s'.", len(cands), query))
	}

	if top := &cands[0]; top.Score() > highlightThreshold {
		parts = append(parts, fmt.Sprintf("Our top recommendation is the %s by %s.",
			top.Product().Title(), top.Product().Brand()))
	}

	if mats := leadingMaterials(cands); len(mats) > 0 {
		parts = append(parts, fmt.Sprintf("These pieces feature %s construction.",
			strings.Join(mats, " and ")))
	}

	if cat := dominantCategory(cands); cat != "" {
		parts = append(parts, fmt.Sprintf("Perfect for your %s needs.", cat))
	}

	return strings.Join(parts, " ")
}

// leadingMaterials collects distinct materials from the leading results
// in first-appearance order. Abbreviations of two characters or fewer
// read poorly in a sentence and are skipped.
func leadingMaterials(cands []candidate.Candidate) []string {
	seen := make(map[string]struct{}, featureWindow)
	var out []string
	for i := 0; i < len(cands) && i < featureWindow; i++ {
		m := strings.ToLower(cands[i].Product().Material())
		if len(m) <= 2 {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) == maxMaterials {
			break
		}
	}
	return out
}

// dominantCategory picks the most common primary category among the
// leading results; ties go to the earliest-ranked one.
func dominantCategory(cands []candidate.Candidate) string {
	counts := make(map[string]int, featureWindow)
	var order []string
	for i := 0; i < len(cands) && i < featureWindow; i++ {
		c := strings.ToLower(cands[i].Product().PrimaryCategory())
		if c == "" {
			continue
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	best, bestCount := "", 0
	for _, c := range order {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}
