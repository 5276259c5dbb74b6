package skillhub

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// MaxSearchLimit caps the limit sent to either search endpoint.
const MaxSearchLimit = 100

// RegistryResult is one hit from the primary registry.
type RegistryResult struct {
	Slug        string  `json:"slug"`
	DisplayName string  `json:"displayName,omitempty"`
	Summary     string  `json:"summary,omitempty"`
	Version     string  `json:"version,omitempty"`
	Score       float64 `json:"score"`
	UpdatedAt   int64   `json:"updatedAt,omitempty"`
}

// CatalogResult is one hit from the community catalog.
type CatalogResult struct {
	Slug     string `json:"id"`
	Name     string `json:"name"`
	Source   string `json:"source"`
	Installs uint64 `json:"installs"`
}

// NormalizeLimit clamps limit to 1..MaxSearchLimit.
func NormalizeLimit(limit int) int {
	return max(1, min(limit, MaxSearchLimit))
}

func searchQuery(query string, limit int) (url.Values, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, schema.ValidationError("query cannot be empty")
	}
	values := url.Values{}
	values.Set("q", q)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(NormalizeLimit(limit)))
	}
	return values, nil
}

// SearchRegistry queries the primary registry. A zero limit leaves the
// server default in place.
func (c *Client) SearchRegistry(ctx context.Context, query string, limit int) ([]RegistryResult, error) {
	values, err := searchQuery(query, limit)
	if err != nil {
		return nil, err
	}
	u, err := buildURL(c.registryBaseURL, "/api/v1/search", values)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []RegistryResult `json:"results"`
	}
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchCatalog queries the community catalog.
func (c *Client) SearchCatalog(ctx context.Context, query string, limit int) ([]CatalogResult, error) {
	values, err := searchQuery(query, limit)
	if err != nil {
		return nil, err
	}
	u, err := buildURL(c.catalogBaseURL, "/api/search", values)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Skills []CatalogResult `json:"skills"`
	}
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// SearchResults holds the outcome of searching both endpoints. Each side
// carries its own error so one failing endpoint does not hide the other.
type SearchResults struct {
	Registry    []RegistryResult
	RegistryErr error
	Catalog     []CatalogResult
	CatalogErr  error
}

// SearchAll queries the registry and the catalog concurrently. It fails only
// when the query is blank or both endpoints fail.
func (c *Client) SearchAll(ctx context.Context, query string, limit int) (*SearchResults, error) {
	if _, err := searchQuery(query, limit); err != nil {
		return nil, err
	}

	var res SearchResults
	var g errgroup.Group
	g.Go(func() error {
		res.Registry, res.RegistryErr = c.SearchRegistry(ctx, query, limit)
		return nil
	})
	g.Go(func() error {
		res.Catalog, res.CatalogErr = c.SearchCatalog(ctx, query, limit)
		return nil
	})
	_ = g.Wait()

	if res.RegistryErr != nil && res.CatalogErr != nil {
		return &res, errors.Join(res.RegistryErr, res.CatalogErr)
	}
	return &res, nil
}
