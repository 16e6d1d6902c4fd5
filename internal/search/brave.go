package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// BraveSearcher queries the Brave web search API
// https://api.search.brave.com/app/documentation/web-search
type BraveSearcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBraveSearcher creates a new Brave searcher
func NewBraveSearcher(cfg Config) *BraveSearcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.search.brave.com"
	}
	return &BraveSearcher{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: cfg.httpClient(),
	}
}

// Name returns the provider name
func (s *BraveSearcher) Name() string { return string(ProviderBrave) }

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search queries Brave web search
func (s *BraveSearcher) Search(ctx context.Context, query string, k int) ([]model.Evidence, error) {
	endpoint := fmt.Sprintf("%s/res/v1/web/search?q=%s&count=%d", s.baseURL, url.QueryEscape(query), k)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave: status %d", resp.StatusCode)
	}

	var raw braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}

	var out []model.Evidence
	for i, r := range raw.Web.Results {
		if i >= k {
			break
		}
		out = append(out, model.Evidence{
			Title:   StripTags(r.Title),
			Snippet: StripTags(r.Description),
			URL:     r.URL,
			Rank:    i,
		})
	}
	return out, nil
}
