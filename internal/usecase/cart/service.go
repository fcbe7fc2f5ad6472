// Package cart implements shareable cart snapshots: a shopper's selection is
// saved under a short opaque ID and can be reopened from a link until it
// expires.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
	"github.com/mamatega/assistant/internal/logger"
)

// DefaultTTL is how long a cart stays shareable when none is configured.
const DefaultTTL = 72 * time.Hour

const idLength = 10

// SaveRequest is the payload for creating or refreshing a shared cart.
type SaveRequest struct {
	ExistingCartID string
	Items          []domain.CartItem
	UserInfo       map[string]string
}

// Service manages cart lifecycle.
type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

// New creates a cart service. A non-positive ttl falls back to DefaultTTL.
func New(repo Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{repo: repo, ttl: ttl, now: time.Now}
}

// Save stores the cart. When the request names an existing, unexpired cart,
// that cart is updated in place and its expiry extended; otherwise a fresh
// cart with a new ID is created.
func (s *Service) Save(ctx context.Context, req SaveRequest) (domain.Cart, error) {
	if len(req.Items) == 0 {
		return domain.Cart{}, domain.ErrEmptyCart
	}
	now := s.now()

	if req.ExistingCartID != "" {
		existing, err := s.repo.Get(ctx, req.ExistingCartID)
		switch {
		case err == nil && !existing.Expired(now):
			existing.Items = req.Items
			if req.UserInfo != nil {
				existing.UserInfo = req.UserInfo
			}
			existing.UpdatedAt = now
			existing.ExpiresAt = now.Add(s.ttl)
			existing.Recalculate()
			if err := s.repo.Put(ctx, existing, s.ttl); err != nil {
				return domain.Cart{}, err
			}
			return existing, nil
		case err != nil && !errors.Is(err, domain.ErrCartNotFound):
			return domain.Cart{}, err
		}
		// Missing or expired: fall through to a fresh cart.
	}

	cart := domain.Cart{
		ID:        newCartID(),
		Items:     req.Items,
		UserInfo:  req.UserInfo,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	cart.Recalculate()

	if err := s.repo.Put(ctx, cart, s.ttl); err != nil {
		return domain.Cart{}, err
	}
	logger.FromContext(ctx).Info("cart created",
		zap.String("cart_id", cart.ID),
		zap.Int("items", cart.TotalItems))
	return cart, nil
}

// Get returns the cart with the given ID. An expired cart is deleted lazily
// and reported as domain.ErrCartExpired.
func (s *Service) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if cart.Expired(s.now()) {
		if delErr := s.repo.Delete(ctx, cartID); delErr != nil {
			logger.FromContext(ctx).Warn("failed to delete expired cart",
				zap.String("cart_id", cartID), zap.Error(delErr))
		}
		return domain.Cart{}, domain.ErrCartExpired
	}
	return cart, nil
}

// newCartID generates a short shareable ID. The NG prefix keeps IDs visually
// distinct from storefront order numbers.
func newCartID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("NG%s", strings.ToUpper(raw[:idLength]))
}
