// Package ads provides a client for the NASA ADS (SciX) API.
//
// Two operations are exposed: ExportBibtex fetches the BibTeX record for a
// single bibcode through the export service, and SearchBibcodeByArxiv
// recovers a bibcode from an arXiv identifier through the search service.
// All ADS requests require an API token (https://ui.adsabs.harvard.edu/user/settings/token).
package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ADS API base URL.
	BaseURL = "https://api.adsabs.harvard.edu/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 5 requests per second; ADS enforces a daily quota rather
	// than a per-second one, this just keeps bursts polite.
	RateLimit = 5.0

	// noRecordsPrefix marks a not-found export embedded in a 200 response.
	// ADS does not use HTTP status for this case.
	noRecordsPrefix = "No records"
)

// Client is a rate-limited HTTP client for the ADS API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API token for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new ADS API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	// Check for API token in environment
	if key := os.Getenv("ADS_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasAPIKey reports whether the client holds an API token.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// do issues an authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	return body, nil
}

// ExportBibtex fetches the BibTeX record for exactly one bibcode through the
// ADS export service. Returns ErrNotFound when the export payload is empty
// or carries ADS's "No records" marker.
func (c *Client) ExportBibtex(ctx context.Context, bibcode string) (string, error) {
	payload, err := json.Marshal(map[string][]string{"bibcode": {bibcode}})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/export/bibtex", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}

	var result struct {
		Export string `json:"export"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: parsing export response: %v", ErrInvalidResponse, err)
	}

	export := strings.TrimSpace(result.Export)
	if export == "" || strings.HasPrefix(export, noRecordsPrefix) {
		return "", fmt.Errorf("%w: bibcode %s", ErrNotFound, bibcode)
	}
	return export, nil
}

// SearchBibcodeByArxiv searches ADS for a record by arXiv identifier and
// returns the first matching bibcode. Returns ErrNotFound when no documents
// match.
func (c *Client) SearchBibcodeByArxiv(ctx context.Context, arxivID string) (string, error) {
	q := url.Values{}
	q.Set("q", "arXiv:"+arxivID)
	q.Set("fl", "bibcode")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/query?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}

	var result struct {
		Response struct {
			Docs []struct {
				Bibcode string `json:"bibcode"`
			} `json:"docs"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: parsing search response: %v", ErrInvalidResponse, err)
	}

	if len(result.Response.Docs) == 0 || result.Response.Docs[0].Bibcode == "" {
		return "", fmt.Errorf("%w: arXiv:%s", ErrNotFound, arxivID)
	}
	return result.Response.Docs[0].Bibcode, nil
}
