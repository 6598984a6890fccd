// Package analytics computes catalog insight numbers for the dashboard:
// price distribution, category breakdown, and brand and material counts.
package analytics

import (
	"math"
	"sort"

	"github.com/kailas-cloud/furnidex/internal/domain/catalog"
)

const topLimit = 10

// NameCount is one labeled tally in a breakdown.
type NameCount struct {
	Name  string
	Count int
}

// RangeCount is one price bucket tally.
type RangeCount struct {
	Range string
	Count int
}

// Stats is a full catalog snapshot for the analytics endpoint. Breakdown
// slices are ordered by count descending, ties alphabetical, so output
// is deterministic for a fixed catalog.
type Stats struct {
	TotalProducts        int
	AvgPrice             float64
	MinPrice             float64
	MaxPrice             float64
	PriceDistribution    []RangeCount
	CategoryBreakdown    []NameCount
	TopBrands            []NameCount
	MaterialDistribution []NameCount
}

// priceRanges buckets prices into (lo, hi] intervals. A non-positive
// price lands in no bucket.
var priceRanges = []struct {
	label  string
	lo, hi float64
}{
	{"$0-50", 0, 50},
	{"$50-100", 50, 100},
	{"$100-200", 100, 200},
	{"$200-500", 200, 500},
	{"$500-1000", 500, 1000},
	{"$1000+", 1000, math.Inf(1)},
}

// Service computes analytics over an immutable catalog snapshot.
type Service struct {
	catalog *catalog.Catalog
}

// New creates an analytics service.
func New(cat *catalog.Catalog) *Service {
	return &Service{catalog: cat}
}

// Stats walks the catalog once per section and assembles the snapshot.
func (s *Service) Stats() Stats {
	items := s.catalog.Products()

	var priceSum float64
	prices := make([]float64, 0, len(items))
	primaries := make([]string, 0, len(items))
	brands := make([]string, 0, len(items))
	materials := make([]string, 0, len(items))
	for i := range items {
		p := &items[i]
		priceSum += p.Price()
		prices = append(prices, p.Price())
		if primary := p.PrimaryCategory(); primary != "" {
			primaries = append(primaries, primary)
		}
		brands = append(brands, p.Brand())
		materials = append(materials, p.Material())
	}

	var avg, minPrice, maxPrice float64
	if len(items) > 0 {
		avg = math.Round(priceSum/float64(len(items))*100) / 100
		minPrice, maxPrice = prices[0], prices[0]
		for _, p := range prices[1:] {
			minPrice = math.Min(minPrice, p)
			maxPrice = math.Max(maxPrice, p)
		}
	}

	return Stats{
		TotalProducts:        len(items),
		AvgPrice:             avg,
		MinPrice:             minPrice,
		MaxPrice:             maxPrice,
		PriceDistribution:    distributePrices(prices),
		CategoryBreakdown:    topCounts(primaries, topLimit),
		TopBrands:            topCounts(brands, topLimit),
		MaterialDistribution: dropEmpty(topCounts(materials, topLimit)),
	}
}

func distributePrices(prices []float64) []RangeCount {
	out := make([]RangeCount, len(priceRanges))
	for i, r := range priceRanges {
		out[i].Range = r.label
	}
	for _, p := range prices {
		for i, r := range priceRanges {
			if p > r.lo && p <= r.hi {
				out[i].Count++
				break
			}
		}
	}
	return out
}

func topCounts(values []string, limit int) []NameCount {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// dropEmpty removes the blank-name tally that products without a known
// material produce. It runs after the top cut, so a catalog dominated by
// unknown materials reports fewer than topLimit entries rather than
// promoting rare ones.
func dropEmpty(counts []NameCount) []NameCount {
	out := counts[:0]
	for _, c := range counts {
		if c.Name != "" {
			out = append(out, c)
		}
	}
	return out
}
