// Package search retrieves web evidence for claims.
//
// Results come back in the provider's relevance order and are never
// re-ranked. Each claim's search is independent; failures surface as
// model.SearchError and degrade only that claim.
package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

// Searcher defines the interface for web search providers
type Searcher interface {
	// Name returns the provider name
	Name() string

	// Search returns at most k results for the query, in provider relevance order
	Search(ctx context.Context, query string, k int) ([]model.Evidence, error)
}

// Provider identifies a search backend
type Provider string

const (
	ProviderTavily Provider = "tavily"
	ProviderBrave  Provider = "brave"
	ProviderSerper Provider = "serper"
)

// Config holds search provider configuration
type Config struct {
	Provider Provider
	APIKey   string
	BaseURL  string // Override for tests
	Timeout  time.Duration
}

func (c Config) httpClient() *http.Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// NewSearcher creates a search provider based on configuration
func NewSearcher(cfg Config) (Searcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Provider)
	}

	switch Provider(strings.ToLower(string(cfg.Provider))) {
	case ProviderTavily:
		return NewTavilySearcher(cfg), nil
	case ProviderBrave:
		return NewBraveSearcher(cfg), nil
	case ProviderSerper:
		return NewSerperSearcher(cfg), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: tavily, brave, serper)", cfg.Provider)
	}
}
