package chat

import (
	"context"

	"github.com/mamatega/assistant/internal/domain"
)

// ProductSearcher resolves a query against the local catalog. It always
// returns a list, never an error.
type ProductSearcher interface {
	Search(ctx context.Context, query string, k int) []domain.Product
}

// Storefront is the live remote catalog used as a second result source.
type Storefront interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

// Completer generates assistant answers.
type Completer interface {
	Complete(ctx context.Context, messages []domain.Message, temperature float32, maxTokens int) (string, error)
}

// HistoryStore persists conversation history per session.
type HistoryStore interface {
	History(ctx context.Context, sessionKey string) ([]domain.Message, error)
	SaveHistory(ctx context.Context, sessionKey string, history []domain.Message) error
}

// CatalogReader exposes the local catalog and its brand list.
type CatalogReader interface {
	Products() []domain.Product
	Brands(limit int) []string
}
