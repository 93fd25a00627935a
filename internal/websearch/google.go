// Package websearch implements a client for the Google Custom Search JSON API.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Options tune a single search request.
type Options struct {
	ResultCount int
	SafeSearch  bool
	Language    string
	Region      string
}

// Result is one raw search hit before enrichment.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client queries the Google Custom Search JSON API.
type Client struct {
	apiKey     string
	engineID   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client for the given API key and engine ID.
func NewClient(apiKey, engineID string) *Client {
	return &Client{
		apiKey:     apiKey,
		engineID:   engineID,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBaseURL creates a client pointed at an alternate endpoint (for testing).
func NewClientWithBaseURL(apiKey, engineID, baseURL string) *Client {
	c := NewClient(apiKey, engineID)
	c.baseURL = baseURL
	return c
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search runs a query and returns the raw hits in ranking order.
func (c *Client) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)

	num := opts.ResultCount
	if num <= 0 {
		num = 10
	}
	params.Set("num", strconv.Itoa(num))

	if opts.SafeSearch {
		params.Set("safe", "active")
	} else {
		params.Set("safe", "off")
	}
	if opts.Language != "" {
		params.Set("lr", "lang_"+opts.Language)
	}
	if opts.Region != "" {
		params.Set("cr", opts.Region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	return results, nil
}
