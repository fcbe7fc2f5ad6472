// Package shopify is a thin Storefront GraphQL client used as the live
// second source of product results next to the local catalog.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
)

// Client talks to the Shopify Storefront GraphQL API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	cacheTTL   time.Duration
	logger     *zap.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	product domain.Product
	stored  time.Time
}

// Config holds storefront API settings.
type Config struct {
	Domain   string
	Token    string
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewClient creates a storefront client.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   fmt.Sprintf("https://%s/api/2023-04/graphql.json", cfg.Domain),
		token:      cfg.Token,
		cacheTTL:   cfg.CacheTTL,
		logger:     cfg.Logger,
		cache:      make(map[string]cacheEntry),
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type productNode struct {
	Title       string   `json:"title"`
	Handle      string   `json:"handle"`
	Description string   `json:"description"`
	Vendor      string   `json:"vendor"`
	Tags        []string `json:"tags"`
}

func (n productNode) toDomain() domain.Product {
	return domain.Product{
		Title:       n.Title,
		Handle:      n.Handle,
		Description: n.Description,
		Brand:       n.Vendor,
		Tags:        n.Tags,
	}
}

// SearchProducts runs a free-text product search against the live storefront.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	const gql = `query($query: String!, $first: Int!) {
	  products(first: $first, query: $query) {
	    edges { node { title handle description vendor tags } }
	  }
	}`

	var resp struct {
		Data struct {
			Products struct {
				Edges []struct {
					Node productNode `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		} `json:"data"`
	}
	err := c.do(ctx, graphQLRequest{
		Query:     gql,
		Variables: map[string]any{"query": query, "first": limit},
	}, &resp)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Data.Products.Edges))
	for _, edge := range resp.Data.Products.Edges {
		products = append(products, edge.Node.toDomain())
	}
	return products, nil
}

// ListBrands returns up to limit distinct vendors from the live storefront.
func (c *Client) ListBrands(ctx context.Context, limit int) ([]string, error) {
	const gql = `{ products(first: 100) { edges { node { vendor } } } }`

	var resp struct {
		Data struct {
			Products struct {
				Edges []struct {
					Node struct {
						Vendor string `json:"vendor"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := c.do(ctx, graphQLRequest{Query: gql}, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var brands []string
	for _, edge := range resp.Data.Products.Edges {
		v := edge.Node.Vendor
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		brands = append(brands, v)
		if len(brands) >= limit {
			break
		}
	}
	return brands, nil
}

// ProductByHandle fetches one product, serving repeated lookups from a
// TTL-bounded in-process cache.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (domain.Product, error) {
	if p, ok := c.cached(handle); ok {
		return p, nil
	}

	const gql = `query($handle: String!) {
	  productByHandle(handle: $handle) { title handle description vendor tags }
	}`

	var resp struct {
		Data struct {
			ProductByHandle *productNode `json:"productByHandle"`
		} `json:"data"`
	}
	err := c.do(ctx, graphQLRequest{
		Query:     gql,
		Variables: map[string]any{"handle": handle},
	}, &resp)
	if err != nil {
		return domain.Product{}, err
	}
	if resp.Data.ProductByHandle == nil {
		return domain.Product{}, fmt.Errorf("product %q not found", handle)
	}

	p := resp.Data.ProductByHandle.toDomain()
	c.storeCache(handle, p)
	return p, nil
}

func (c *Client) cached(handle string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[handle]
	if !ok || time.Since(entry.stored) > c.cacheTTL {
		return domain.Product{}, false
	}
	return entry.product, true
}

func (c *Client) storeCache(handle string, p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[handle] = cacheEntry{product: p, stored: time.Now()}
}

func (c *Client) do(ctx context.Context, req graphQLRequest, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("storefront request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront request: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode storefront response: %w", err)
	}
	return nil
}
