package search

import (
	"context"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/worker"
)

// LimitedSearcher wraps a Searcher with a shared per-host rate limiter,
// keyed by the provider name. Parallel claim verification would otherwise
// burst the search API with one request per worker.
type LimitedSearcher struct {
	inner   Searcher
	limiter *worker.Limiter
}

// NewLimitedSearcher creates a rate-limited wrapper around inner
func NewLimitedSearcher(inner Searcher, limiter *worker.Limiter) *LimitedSearcher {
	return &LimitedSearcher{inner: inner, limiter: limiter}
}

// Name returns the wrapped provider name
func (s *LimitedSearcher) Name() string { return s.inner.Name() }

// Search waits for rate limit clearance, then queries the provider
func (s *LimitedSearcher) Search(ctx context.Context, query string, k int) ([]model.Evidence, error) {
	if err := s.limiter.Wait(ctx, s.inner.Name()); err != nil {
		return nil, err
	}
	return s.inner.Search(ctx, query, k)
}
