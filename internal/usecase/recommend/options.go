package recommend

import (
	"fmt"

	"github.com/kailas-cloud/furnidex/internal/domain/scoring"
)

// Options tunes the ranking pipeline. All values are set once at startup;
// nothing here changes per query.
type Options struct {
	// Weights blend text similarity with the keyword factors.
	Weights scoring.Weights
	// MinScore is the combined-score threshold a hit must clear.
	MinScore float64
	// RelaxFactor scales MinScore for the second threshold pass when the
	// first admits nothing.
	RelaxFactor float64
	// FallbackFactor bounds the fallback result set and the dedup output
	// at FallbackFactor*topK items.
	FallbackFactor int
	// ScanFactor caps the dedup walk at ScanFactor*topK ranked items.
	ScanFactor int
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		Weights:        scoring.DefaultWeights(),
		MinScore:       0.45,
		RelaxFactor:    0.85,
		FallbackFactor: 2,
		ScanFactor:     3,
	}
}

func (o Options) validate() error {
	if err := o.Weights.Validate(); err != nil {
		return err
	}
	if o.MinScore < 0 || o.MinScore > 1 {
		return fmt.Errorf("min score must be in [0, 1], got %v", o.MinScore)
	}
	if o.RelaxFactor <= 0 || o.RelaxFactor > 1 {
		return fmt.Errorf("relax factor must be in (0, 1], got %v", o.RelaxFactor)
	}
	if o.FallbackFactor < 1 {
		return fmt.Errorf("fallback factor must be at least 1, got %d", o.FallbackFactor)
	}
	if o.ScanFactor < o.FallbackFactor {
		return fmt.Errorf("scan factor %d must be at least the fallback factor %d", o.ScanFactor, o.FallbackFactor)
	}
	return nil
}
