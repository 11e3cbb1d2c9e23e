// Package search wraps the upstream web-search API and the URL-import
// crawler that together supply candidate sources for verification.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/cache"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Client calls the Exa search API to find candidate sources for a claim.
// Results are cached keyed on the claim text so repeated reviews of the
// same claim do not burn search quota.
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
	cache      cache.Cache // nil disables caching
	cacheTTL   time.Duration
}

// NewClient creates a search client. Pass a nil cache to disable caching.
func NewClient(apiKey, baseURL string, maxResults int, timeout time.Duration, c cache.Cache, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.exa.ai"
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

type searchRequest struct {
	Query      string         `json:"query"`
	NumResults int            `json:"numResults"`
	Contents   searchContents `json:"contents"`
}

type searchContents struct {
	Text bool `json:"text"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// Search returns candidate sources for the claim, most relevant first
func (c *Client) Search(ctx context.Context, claim string) ([]model.Source, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, fault.New(fault.KindInvalidInput, "claim is required")
	}
	if c.apiKey == "" {
		return nil, fault.New(fault.KindMissingCredential, "missing Exa API key")
	}

	key := cache.Key("search:" + claim)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var sources []model.Source
			if err := json.Unmarshal(data, &sources); err == nil {
				return sources, nil
			}
		}
	}

	body, err := json.Marshal(searchRequest{
		Query:      claim,
		NumResults: c.maxResults,
		Contents:   searchContents{Text: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.KindUpstreamUnavailable, "search request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fault.Newf(fault.KindUpstreamUnavailable,
			"Exa error: %d - %s", resp.StatusCode, string(respBody))
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fault.Wrap(fault.KindUpstreamParse, "decode search response", err)
	}

	sources := make([]model.Source, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		text := r.Text
		if text == "" {
			text = r.Title
		}
		sources = append(sources, model.Source{Text: text, URL: r.URL})
	}

	if c.cache != nil {
		if data, err := json.Marshal(sources); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}

	return sources, nil
}
