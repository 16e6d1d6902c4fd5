package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/veridoc/veridoc/internal/cache"
	"github.com/veridoc/veridoc/internal/model"
)

// CachedSearcher wraps a Searcher with TTL-bound response caching.
// A document often repeats the same figure in several claims; the
// reformulated queries collide and the second lookup is free.
type CachedSearcher struct {
	inner Searcher
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSearcher creates a caching wrapper around inner
func NewCachedSearcher(inner Searcher, c cache.Cache, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped provider name
func (s *CachedSearcher) Name() string { return s.inner.Name() }

// Search serves from cache when possible, falling through to the provider.
// Only successful responses are cached; failures always retry upstream.
func (s *CachedSearcher) Search(ctx context.Context, query string, k int) ([]model.Evidence, error) {
	key := cache.SearchKey(fmt.Sprintf("%s:%d", s.inner.Name(), k), query)

	if data, found := s.cache.Get(key); found {
		var results []model.Evidence
		if err := json.Unmarshal(data, &results); err == nil {
			return results, nil
		}
		// Corrupt entry: drop it and refetch
		_ = s.cache.Delete(key)
	}

	results, err := s.inner.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		_ = s.cache.Set(key, data, s.ttl)
	}

	return results, nil
}
