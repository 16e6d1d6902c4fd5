package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// TavilySearcher queries the Tavily search API
// https://docs.tavily.com/docs/rest-api/api-reference
type TavilySearcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTavilySearcher creates a new Tavily searcher
func NewTavilySearcher(cfg Config) *TavilySearcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	return &TavilySearcher{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: cfg.httpClient(),
	}
}

// Name returns the provider name
func (s *TavilySearcher) Name() string { return string(ProviderTavily) }

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search queries Tavily with advanced search depth
func (s *TavilySearcher) Search(ctx context.Context, query string, k int) ([]model.Evidence, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:      s.apiKey,
		Query:       query,
		SearchDepth: "advanced",
		MaxResults:  k,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var raw tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}

	var out []model.Evidence
	for i, r := range raw.Results {
		if i >= k {
			break
		}
		out = append(out, model.Evidence{
			Title:   StripTags(r.Title),
			Snippet: StripTags(r.Content),
			URL:     r.URL,
			Rank:    i,
		})
	}
	return out, nil
}
