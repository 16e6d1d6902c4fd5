package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// SerperSearcher queries the serper.dev Google search API
// https://serper.dev/
type SerperSearcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSerperSearcher creates a new Serper searcher
func NewSerperSearcher(cfg Config) *SerperSearcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://google.serper.dev"
	}
	return &SerperSearcher{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: cfg.httpClient(),
	}
}

// Name returns the provider name
func (s *SerperSearcher) Name() string { return string(ProviderSerper) }

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search queries Serper organic results
func (s *SerperSearcher) Search(ctx context.Context, query string, k int) ([]model.Evidence, error) {
	body, err := json.Marshal(map[string]any{"q": query, "num": k})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: status %d", resp.StatusCode)
	}

	var raw serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}

	var out []model.Evidence
	for i, r := range raw.Organic {
		if i >= k {
			break
		}
		out = append(out, model.Evidence{
			Title:   StripTags(r.Title),
			Snippet: StripTags(r.Snippet),
			URL:     r.Link,
			Rank:    i,
		})
	}
	return out, nil
}
