// Package inspire provides a client for the INSPIRE-HEP literature API.
//
// INSPIRE serves two record representations from the same endpoint: BibTeX
// text when the Accept header requests application/x-bibtex, and JSON
// metadata otherwise. The client exposes both: FetchBibtex for the record
// itself and ResolveADSInfo for the cross-reference identifiers (ADS
// bibcode, arXiv eprint) that bridge a texkey to NASA ADS.
package inspire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the INSPIRE literature API endpoint.
	BaseURL = "https://inspirehep.net/api/literature"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 2 requests per second, well under INSPIRE's documented
	// limit of 15 requests per 5-second window.
	RateLimit = 2.0
)

// Client is a rate-limited HTTP client for the INSPIRE literature API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

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

// NewClient creates a new INSPIRE literature API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get issues a literature query for the given texkey with the given Accept
// header and returns the raw response body.
//
// The query uses the texkeys field explicitly so the colon inside the key is
// not interpreted as a field operator.
func (c *Client) get(ctx context.Context, texkey, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + "?q=" + url.QueryEscape("texkeys:"+texkey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Texkey: texkey}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	return body, nil
}

// FetchBibtex fetches the BibTeX record for a texkey directly from INSPIRE.
// Returns ErrNotFound if the response body is empty after trimming.
func (c *Client) FetchBibtex(ctx context.Context, texkey string) (string, error) {
	body, err := c.get(ctx, texkey, "application/x-bibtex")
	if err != nil {
		return "", err
	}

	bibtex := strings.TrimSpace(string(body))
	if bibtex == "" {
		return "", fmt.Errorf("%w: texkey %s", ErrNotFound, texkey)
	}
	return bibtex, nil
}

// literatureResponse mirrors the JSON shape of an INSPIRE literature query.
type literatureResponse struct {
	Hits struct {
		Hits []struct {
			Metadata struct {
				ExternalSystemIdentifiers []struct {
					Schema string `json:"schema"`
					Value  string `json:"value"`
				} `json:"external_system_identifiers"`
				ArxivEprints []struct {
					Value string `json:"value"`
				} `json:"arxiv_eprints"`
			} `json:"metadata"`
		} `json:"hits"`
	} `json:"hits"`
}

// ADSInfo holds cross-reference identifiers recovered from INSPIRE metadata.
// Either field may be empty; the two are independent.
type ADSInfo struct {
	Bibcode string
	ArxivID string
}

// ResolveADSInfo queries INSPIRE metadata for a texkey and extracts, from the
// first matching hit only, the ADS bibcode (first external identifier with
// schema "ADS") and the first arXiv eprint. Zero hits returns a zero ADSInfo
// and no error; this is not a lookup failure, just an absent cross-reference.
func (c *Client) ResolveADSInfo(ctx context.Context, texkey string) (ADSInfo, error) {
	body, err := c.get(ctx, texkey, "application/json")
	if err != nil {
		return ADSInfo{}, err
	}

	var lit literatureResponse
	if err := json.Unmarshal(body, &lit); err != nil {
		return ADSInfo{}, fmt.Errorf("%w: parsing literature response: %v", ErrInvalidResponse, err)
	}

	if len(lit.Hits.Hits) == 0 {
		return ADSInfo{}, nil
	}

	var info ADSInfo
	meta := lit.Hits.Hits[0].Metadata
	for _, ext := range meta.ExternalSystemIdentifiers {
		if ext.Schema == "ADS" {
			info.Bibcode = ext.Value
			break
		}
	}
	if len(meta.ArxivEprints) > 0 {
		info.ArxivID = meta.ArxivEprints[0].Value
	}
	return info, nil
}
