// Package cart persists cart snapshots as JSON values in the key-value
// store. Expiry is enforced at the usecase level; the driver TTL is set as
// well so abandoned carts age out of storage on their own.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mamatega/assistant/internal/db"
	"github.com/mamatega/assistant/internal/domain"
)

// Repo stores cart snapshots.
type Repo struct {
	store     db.KVStore
	keyPrefix string
}

// New creates a cart repository.
func New(store db.KVStore, keyPrefix string) *Repo {
	return &Repo{store: store, keyPrefix: keyPrefix + "cart:"}
}

// Get returns the cart with the given ID, or domain.ErrCartNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.Cart, error) {
	data, err := r.store.Get(ctx, r.keyPrefix+id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("get cart %s: %w", id, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart %s: %w", id, err)
	}
	return cart, nil
}

// Put stores the cart. A non-positive TTL stores it without driver expiry.
func (r *Repo) Put(ctx context.Context, cart domain.Cart, ttl time.Duration) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cart.ID, err)
	}
	if ttl > 0 {
		if err := r.store.SetWithTTL(ctx, r.keyPrefix+cart.ID, data, ttl); err != nil {
			return fmt.Errorf("store cart %s: %w", cart.ID, err)
		}
		return nil
	}
	if err := r.store.Set(ctx, r.keyPrefix+cart.ID, data); err != nil {
		return fmt.Errorf("store cart %s: %w", cart.ID, err)
	}
	return nil
}

// Delete removes the cart.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.keyPrefix+id); err != nil {
		return fmt.Errorf("delete cart %s: %w", id, err)
	}
	return nil
}
