// Package ingest builds the catalog at startup: it renders one weighted
// passage per product, embeds everything through the configured chain,
// and assembles the immutable catalog the ranking service reads.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/catalog"
	"github.com/kailas-cloud/furnidex/internal/domain/product"
	"github.com/kailas-cloud/furnidex/internal/metrics"
)

// Options tunes the startup embedding run.
type Options struct {
	Workers   int // concurrent embedding calls
	BatchSize int // texts per provider call
}

// DefaultOptions returns a tuning that keeps startup fast without
// hammering the provider.
func DefaultOptions() Options {
	return Options{Workers: 4, BatchSize: 64}
}

// Service embeds cleaned products into a ready catalog.
type Service struct {
	embed  domain.Embedder
	opts   Options
	logger *zap.Logger
}

// New creates an ingest service. Batch-capable embedders are used one
// batch per call; plain embedders fall back to one call per text.
func New(embed domain.Embedder, opts Options, logger *zap.Logger) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{embed: embed, opts: opts, logger: logger}
}

// Build embeds every product and assembles the catalog. Vector order
// follows product order, so scores computed over the matrix line up with
// the product list. The first embedding error cancels the whole run.
func (s *Service) Build(ctx context.Context, products []product.Product) (*catalog.Catalog, error) {
	if len(products) == 0 {
		s.logger.Warn("Building catalog from an empty product list")
		return catalog.Empty(), nil
	}
	start := time.Now()
	s.logger.Info("Precomputing product embeddings",
		zap.Int("products", len(products)),
		zap.Int("workers", s.opts.Workers),
		zap.Int("batch_size", s.opts.BatchSize),
	)

	texts := make([]string, len(products))
	for i := range products {
		texts[i] = EmbeddingText(&products[i])
	}
	vectors := make([][]float32, len(products))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type span struct{ lo, hi int }
	jobs := make(chan span, s.opts.Workers*2)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
		done     atomic.Int64
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < s.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue // drain the channel after a failure
				}
				res, err := s.embedBatch(ctx, texts[j.lo:j.hi])
				if err != nil {
					fail(fmt.Errorf("embed batch [%d:%d): %w", j.lo, j.hi, err))
					continue
				}
				if len(res.Embeddings) != j.hi-j.lo {
					fail(fmt.Errorf("embed batch [%d:%d): got %d embeddings", j.lo, j.hi, len(res.Embeddings)))
					continue
				}
				copy(vectors[j.lo:j.hi], res.Embeddings)
				s.logger.Debug("Embedded catalog batch",
					zap.Int64("done", done.Add(int64(j.hi-j.lo))),
					zap.Int("total", len(products)),
				)
			}
		}()
	}

produce:
	for lo := 0; lo < len(texts); lo += s.opts.BatchSize {
		hi := lo + s.opts.BatchSize
		if hi > len(texts) {
			hi = len(texts)
		}
		select {
		case jobs <- span{lo, hi}:
		case <-ctx.Done():
			break produce
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat, err := catalog.New(products, vectors)
	if err != nil {
		return nil, fmt.Errorf("assemble catalog: %w", err)
	}

	elapsed := time.Since(start)
	metrics.CatalogProducts.Set(float64(cat.Len()))
	metrics.CatalogDimensions.Set(float64(cat.Dims()))
	metrics.CatalogIngestDuration.Set(elapsed.Seconds())
	s.logger.Info("Catalog ready",
		zap.Int("products", cat.Len()),
		zap.Int("dimensions", cat.Dims()),
		zap.Duration("duration", elapsed),
	)
	return cat, nil
}

func (s *Service) embedBatch(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := s.embed.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, s.embed, texts)
}

// EmbeddingText renders the weighted passage for one product: the title
// three times, the description twice, then categories, material and
// color once each. Repetition biases the vector toward what shoppers
// actually search by.
func EmbeddingText(p *product.Product) string {
	parts := make([]string, 0, 7)
	if t := p.Title(); t != "" {
		parts = append(parts, t, t, t)
	}
	if d := p.Description(); d != "" {
		parts = append(parts, d, d)
	}
	if cats := p.Categories(); len(cats) > 0 {
		parts = append(parts, strings.Join(cats, ", "))
	}
	if mc := strings.TrimSpace(p.Material() + " " + p.Color()); mc != "" {
		parts = append(parts, mc)
	}
	return strings.Join(parts, " ")
}
