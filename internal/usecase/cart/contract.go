package cart

import (
	"context"
	"time"

	"github.com/mamatega/assistant/internal/domain"
)

// Repository persists carts with a lifetime.
type Repository interface {
	Get(ctx context.Context, cartID string) (domain.Cart, error)
	Put(ctx context.Context, c domain.Cart, ttl time.Duration) error
	Delete(ctx context.Context, cartID string) error
}
