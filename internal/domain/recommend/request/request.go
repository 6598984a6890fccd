// Package request models a validated recommendation query.
package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/recommend/filters"
)

const (
	// DefaultTopK is used when the caller leaves top_k unset.
	DefaultTopK = 5
	// MinTopK and MaxTopK bound an explicitly requested top_k.
	MinTopK = 1
	MaxTopK = 10
	// MaxQueryLen caps the query text in runes.
	MaxQueryLen = 512
)

// Request is a validated recommendation query. Construct via New.
type Request struct {
	query   string
	topK    int
	filters filters.Filters
}

// New trims and validates the query text and bounds. A zero topK selects
// DefaultTopK; an explicit value outside [MinTopK, MaxTopK] is rejected.
func New(query string, topK int, f filters.Filters) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLen {
		return Request{}, fmt.Errorf("%w: query exceeds %d characters", domain.ErrInvalidRequest, MaxQueryLen)
	}

	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < MinTopK || topK > MaxTopK {
		return Request{}, fmt.Errorf("%w: top_k must be between %d and %d", domain.ErrInvalidRequest, MinTopK, MaxTopK)
	}

	return Request{query: query, topK: topK, filters: f}, nil
}

func (r Request) Query() string { return r.query }

func (r Request) TopK() int { return r.topK }

func (r Request) Filters() filters.Filters { return r.filters }
