package search

import (
	"context"

	"github.com/mamatega/assistant/internal/domain"
)

// CatalogReader exposes the immutable product catalog.
type CatalogReader interface {
	Products() []domain.Product
}

// Embedder vectorizes query text. Failures are absorbed by the controller:
// the semantic strategy is skipped and the fallback chain continues.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
