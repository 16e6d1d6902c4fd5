package pipeline

import (
	"github.com/veridoc/veridoc/internal/cache"
	"github.com/veridoc/veridoc/internal/extract"
	"github.com/veridoc/veridoc/internal/llm"
	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/search"
	"github.com/veridoc/veridoc/internal/validate"
	"github.com/veridoc/veridoc/internal/verdict"
	"github.com/veridoc/veridoc/internal/worker"
)

// NewFromConfig wires a pipeline from configuration. Credentials must
// already be resolved into cfg; a missing or invalid one fails here,
// before any document is touched.
func NewFromConfig(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, &model.ConfigurationError{Reason: err.Error()}
	}

	searcher, err := search.NewSearcher(search.Config{
		Provider: search.Provider(cfg.Search.Provider),
		APIKey:   cfg.Search.APIKey,
		Timeout:  cfg.Search.Timeout,
	})
	if err != nil {
		return nil, &model.ConfigurationError{Reason: err.Error()}
	}

	limiter := worker.NewLimiter(cfg.Search.RateLimit, cfg.Search.RateBurst)
	searcher = search.NewLimitedSearcher(searcher, limiter)

	if cfg.Cache.Enabled {
		var c cache.Cache
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.MemoryTTL, cfg.Cache.MemoryTTL)
		}
		searcher = search.NewCachedSearcher(searcher, c, cfg.Cache.MemoryTTL)
	}

	p := New(
		extract.NewTextExtractor(cfg.Extract.MaxTextBytes),
		extract.NewClaimExtractor(provider, cfg.Extract.MaxClaims),
		searcher,
		verdict.NewSynthesizer(provider),
		cfg,
	)

	if cfg.Validation.Enabled {
		p.WithValidator(validate.NewValidator(
			cfg.Validation.Timeout,
			cfg.Validation.Workers,
			cfg.HTTP.UserAgent,
			limiter,
			cfg.HTTP.HTTPProxy,
			cfg.HTTP.HTTPSProxy,
			cfg.HTTP.NoProxy,
		))
	}

	return p, nil
}
