// Package session persists per-session chat history in the key-value store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mamatega/assistant/internal/db"
	"github.com/mamatega/assistant/internal/domain"
)

// Repo stores conversation history keyed by session.
type Repo struct {
	store     db.KVStore
	keyPrefix string
}

// New creates a session repository.
func New(store db.KVStore, keyPrefix string) *Repo {
	return &Repo{store: store, keyPrefix: keyPrefix + "session:"}
}

// History returns the stored conversation for the session. A missing session
// yields an empty history, not an error.
func (r *Repo) History(ctx context.Context, sessionKey string) ([]domain.Message, error) {
	data, err := r.store.Get(ctx, r.keyPrefix+sessionKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session %s: %w", sessionKey, err)
	}

	var history []domain.Message
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionKey, err)
	}
	return history, nil
}

// SaveHistory replaces the stored conversation for the session.
func (r *Repo) SaveHistory(ctx context.Context, sessionKey string, history []domain.Message) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionKey, err)
	}
	if err := r.store.Set(ctx, r.keyPrefix+sessionKey, data); err != nil {
		return fmt.Errorf("store session %s: %w", sessionKey, err)
	}
	return nil
}
