// Package recommend ranks catalog products against a free-text query by
// blending embedding similarity with keyword affinity for category,
// material and color.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/catalog"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/candidate"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/request"
	"github.com/kailas-cloud/furnidex/internal/domain/scoring"
	"github.com/kailas-cloud/furnidex/internal/metrics"
)

// Result carries the outcome of one recommendation query.
type Result struct {
	Candidates []candidate.Candidate
	// LowConfidence is set when no item cleared the relaxed score
	// threshold and the top raw matches were returned anyway.
	LowConfidence bool
	PromptTokens  int
	TotalTokens   int
}

// Service ranks products from an immutable catalog snapshot.
type Service struct {
	catalog *catalog.Catalog
	embed   Embedder
	opts    Options
	logger  *zap.Logger
}

// New creates a recommendation service over the given catalog. The
// options are validated here so a bad weight blend fails at startup, not
// on the first query.
func New(cat *catalog.Catalog, embed Embedder, opts Options, logger *zap.Logger) (*Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("recommend options: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: cat, embed: embed, opts: opts, logger: logger}, nil
}

// Recommend embeds the query, scores every catalog item, and returns up
// to TopK unique products that pass the request filters, best first.
func (s *Service) Recommend(ctx context.Context, req request.Request) (Result, error) {
	if s.catalog.Len() == 0 {
		return Result{}, nil
	}
	start := time.Now()

	embRes, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return Result{}, fmt.Errorf("vectorize query: %w", err)
	}
	if got := len(embRes.Embedding); got != s.catalog.Dims() {
		return Result{}, domain.NewDimensionMismatch(got, s.catalog.Dims())
	}

	items := s.catalog.Products()
	text := scoring.Similarities(embRes.Embedding, s.catalog.Vectors())
	combined := s.opts.Weights.Combine(
		text,
		scoring.CategoryScores(req.Query(), items),
		scoring.MaterialScores(req.Query(), items),
		scoring.ColorScores(req.Query(), items),
	)

	order, lowConfidence := s.rankIndices(combined, req.TopK())
	if lowConfidence {
		s.logger.Warn("No results met the similarity threshold",
			zap.String("query", req.Query()),
		)
	}

	cands := s.collectUnique(order, combined, text, req.TopK())

	if f := req.Filters(); !f.Empty() {
		kept := make([]candidate.Candidate, 0, len(cands))
		for i := range cands {
			if f.Match(cands[i].Product()) {
				kept = append(kept, cands[i])
			}
		}
		cands = kept
	}

	if len(cands) > req.TopK() {
		cands = cands[:req.TopK()]
	}

	confidence := "ok"
	if lowConfidence {
		confidence = "low"
	}
	metrics.RecommendationsTotal.WithLabelValues(confidence).Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendationResults.Observe(float64(len(cands)))

	return Result{
		Candidates:    cands,
		LowConfidence: lowConfidence,
		PromptTokens:  embRes.PromptTokens,
		TotalTokens:   embRes.TotalTokens,
	}, nil
}

// rankIndices selects the candidate index set and orders it best first.
//
// The threshold cascade keeps everything at or above MinScore; when that
// admits nothing it retries at RelaxFactor*MinScore; when even that
// admits nothing it falls back to the FallbackFactor*topK best raw
// scores and flags the result as low confidence. Ties keep catalog
// order, so ranking is deterministic for a fixed catalog.
func (s *Service) rankIndices(combined []float64, topK int) ([]int, bool) {
	valid := indicesAtOrAbove(combined, s.opts.MinScore)
	if len(valid) == 0 {
		valid = indicesAtOrAbove(combined, s.opts.MinScore*s.opts.RelaxFactor)
	}
	if len(valid) > 0 {
		sortByScoreDesc(valid, combined)
		return valid, false
	}

	all := make([]int, len(combined))
	for i := range all {
		all[i] = i
	}
	sortByScoreDesc(all, combined)
	if limit := topK * s.opts.FallbackFactor; len(all) > limit {
		all = all[:limit]
	}
	return all, true
}

// collectUnique walks the ranked order and emits candidates with unseen
// product IDs. The walk scans at most ScanFactor*topK entries and stops
// after FallbackFactor*topK unique hits, leaving room for the filter
// stage to discard some while topK can still be served.
func (s *Service) collectUnique(order []int, combined, text []float64, topK int) []candidate.Candidate {
	if scanCap := topK * s.opts.ScanFactor; len(order) > scanCap {
		order = order[:scanCap]
	}
	emitCap := topK * s.opts.FallbackFactor

	seen := make(map[string]struct{}, len(order))
	out := make([]candidate.Candidate, 0, min(len(order), emitCap))
	for _, idx := range order {
		p := s.catalog.At(idx)
		if _, dup := seen[p.ID()]; dup {
			continue
		}
		seen[p.ID()] = struct{}{}
		out = append(out, candidate.New(p, combined[idx], text[idx]))
		if len(out) >= emitCap {
			break
		}
	}
	return out
}

func indicesAtOrAbove(scores []float64, threshold float64) []int {
	var idx []int
	for i, s := range scores {
		if s >= threshold {
			idx = append(idx, i)
		}
	}
	return idx
}

func sortByScoreDesc(idx []int, scores []float64) {
	sort.SliceStable(idx, func(i, j int) bool {
		return scores[idx[i]] > scores[idx[j]]
	})
}
