package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/go-resty/resty/v2"
)

// TavilyProvider implements the Tavily search API
type TavilyProvider struct {
	apiKey         string
	baseURL        string
	maxResults     int
	includeDomains []string
	client         *resty.Client
}

// Ensure TavilyProvider implements Provider
var _ Provider = (*TavilyProvider)(nil)

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

// NewTavilyProvider creates a new Tavily search provider
func NewTavilyProvider(apiKey, baseURL string, maxResults int, includeDomains []string) *TavilyProvider {
	return &TavilyProvider{
		apiKey:         apiKey,
		baseURL:        baseURL,
		maxResults:     maxResults,
		includeDomains: includeDomains,
		client:         resty.New().SetTimeout(30 * time.Second),
	}
}

func (t *TavilyProvider) GetName() string {
	return "tavily"
}

// Search issues one search request for the given query and returns the
// provider's results in provider order.
func (t *TavilyProvider) Search(ctx context.Context, query string) ([]models.SearchHit, error) {
	req := tavilyRequest{
		APIKey:         t.apiKey,
		Query:          query,
		SearchDepth:    "basic",
		MaxResults:     t.maxResults,
		IncludeDomains: t.includeDomains,
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(t.baseURL + "/search")

	if err != nil {
		return nil, fmt.Errorf("tavily search failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("tavily API returned status %d", resp.StatusCode())
	}

	var searchResp tavilyResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse tavily response: %w", err)
	}

	hits := make([]models.SearchHit, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		hits = append(hits, models.SearchHit{
			URL:     r.URL,
			Title:   r.Title,
			Content: r.Content,
		})
	}

	return hits, nil
}
