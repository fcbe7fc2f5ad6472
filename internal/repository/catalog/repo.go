// Package catalog loads the product catalog with precomputed embeddings from
// a local file or an HTTP object store, validates it once, and serves it
// read-only for the process lifetime.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
)

// Repo holds the immutable catalog.
type Repo struct {
	products []domain.Product
}

// Load reads, parses, and validates the catalog from source. Records with no
// title are dropped; embeddings with the wrong dimension are cleared so the
// record still serves the substring matchers. The returned repo never
// changes after Load.
func Load(ctx context.Context, source string, dimensions int, log *zap.Logger) (*Repo, error) {
	data, err := readSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var raw []domain.Product
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse catalog: %v", domain.ErrCatalogUnavailable, err)
	}

	products := make([]domain.Product, 0, len(raw))
	var skipped, cleared int
	for _, p := range raw {
		if strings.TrimSpace(p.Title) == "" {
			skipped++
			continue
		}
		if dimensions > 0 && len(p.Embedding) > 0 && len(p.Embedding) != dimensions {
			p.Embedding = nil
			cleared++
		}
		products = append(products, p)
	}

	log.Info("Catalog loaded",
		zap.String("source", source),
		zap.Int("products", len(products)),
		zap.Int("skipped", skipped),
		zap.Int("embeddings_cleared", cleared),
	)

	return &Repo{products: products}, nil
}

// Products returns the full catalog. Callers must not mutate it.
func (r *Repo) Products() []domain.Product {
	return r.products
}

// Count returns the number of loaded products.
func (r *Repo) Count() int {
	return len(r.products)
}

// Brands returns up to limit distinct brand names in catalog order. Products
// without a brand contribute the first word of their title, matching how the
// storefront widget labels them.
func (r *Repo) Brands(limit int) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, p := range r.products {
		name := strings.TrimSpace(p.Brand)
		if name == "" {
			fields := strings.Fields(p.Title)
			if len(fields) == 0 {
				continue
			}
			name = fields[0]
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		brands = append(brands, name)
		if len(brands) >= limit {
			break
		}
	}
	return brands
}

func readSource(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetchURL(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
