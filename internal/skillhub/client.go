package skillhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crystaldolphin/skillhub/internal/schema"
	"github.com/crystaldolphin/skillhub/internal/shared/stringutils"
)

const (
	DefaultRegistryBaseURL = "https://clawhub.ai"
	DefaultCatalogBaseURL  = "https://skills.sh"
	DefaultRequestTimeout  = 20 * time.Second

	userAgent     = "skillhub/0.1"
	maxSnippetLen = 512
)

// Client talks to the primary skill registry and the secondary community
// catalog over HTTP.
type Client struct {
	httpClient      *http.Client
	registryBaseURL string
	catalogBaseURL  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRegistryBaseURL points the client at another primary registry.
func WithRegistryBaseURL(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.registryBaseURL = base
		}
	}
}

// WithCatalogBaseURL points the client at another community catalog.
func WithCatalogBaseURL(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.catalogBaseURL = base
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Client with the public endpoints and a 20s timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: DefaultRequestTimeout},
		registryBaseURL: DefaultRegistryBaseURL,
		catalogBaseURL:  DefaultCatalogBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.registryBaseURL = strings.TrimRight(c.registryBaseURL, "/")
	c.catalogBaseURL = strings.TrimRight(c.catalogBaseURL, "/")
	return c
}

// RegistryBaseURL returns the primary registry base URL.
func (c *Client) RegistryBaseURL() string { return c.registryBaseURL }

// CatalogBaseURL returns the community catalog base URL.
func (c *Client) CatalogBaseURL() string { return c.catalogBaseURL }

func buildURL(base, path string, query url.Values) (string, error) {
	u, err := url.Parse(base + path)
	if err != nil {
		return "", schema.ValidationError("invalid base URL %q: %v", base, err)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// get performs a GET and returns the body of a successful response.
func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, schema.ValidationError("invalid request URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &schema.SkillError{
			Kind:    schema.KindNetwork,
			Message: fmt.Sprintf("request failed: %s", rawURL),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &schema.SkillError{
			Kind:       schema.KindNetwork,
			Message:    fmt.Sprintf("failed to read response body: %s", rawURL),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(rawURL, resp.StatusCode, body)
	}
	return body, nil
}

func statusError(rawURL string, status int, body []byte) error {
	msg := fmt.Sprintf("request failed (%d): %s", status, rawURL)
	if snippet := stringutils.Truncate(strings.TrimSpace(string(body)), maxSnippetLen); snippet != "" {
		msg += " -> " + snippet
	}
	return &schema.SkillError{Kind: schema.KindNetwork, Message: msg, StatusCode: status}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &schema.SkillError{
			Kind:    schema.KindNetwork,
			Message: fmt.Sprintf("failed to parse JSON response: %s", rawURL),
			Err:     err,
		}
	}
	return nil
}

// Download fetches the zip archive for a registry slug. Blank version and tag
// are left out of the request.
func (c *Client) Download(ctx context.Context, slug, version, tag string) ([]byte, error) {
	q := url.Values{}
	q.Set("slug", slug)
	if v := strings.TrimSpace(version); v != "" {
		q.Set("version", v)
	}
	if t := strings.TrimSpace(tag); t != "" {
		q.Set("tag", t)
	}
	u, err := buildURL(c.registryBaseURL, "/api/v1/download", q)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, u, "application/zip")
}
