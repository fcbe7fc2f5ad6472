package embcache

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/db"
	"github.com/mamatega/assistant/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	data map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 7}, nil
}

// --- Tests ---

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.5, -1.25, 3}}
	cache := New(inner, newMockStore(), "test:", nil, zap.NewNop())
	ctx := context.Background()

	first, err := cache.Embed(ctx, "shea soap")
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", inner.calls)
	}
	if first.TotalTokens != 7 {
		t.Errorf("miss should report provider tokens, got %d", first.TotalTokens)
	}

	second, err := cache.Embed(ctx, "shea soap")
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("expected cache hit, provider called %d times", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit must report zero tokens, got %d", second.TotalTokens)
	}
	if len(second.Embedding) != 3 || second.Embedding[1] != -1.25 {
		t.Errorf("cached vector mismatch: %v", second.Embedding)
	}
}

func TestEmbed_DifferentTextsMiss(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1}}
	cache := New(inner, newMockStore(), "test:", nil, zap.NewNop())
	ctx := context.Background()

	if _, err := cache.Embed(ctx, "soap"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Embed(ctx, "serum"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("distinct texts must both miss, got %d calls", inner.calls)
	}
}

func TestEmbed_ProviderErrorNotCached(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("rate limited")}
	store := newMockStore()
	cache := New(inner, store, "test:", nil, zap.NewNop())

	if _, err := cache.Embed(context.Background(), "soap"); err == nil {
		t.Fatal("expected provider error")
	}
	if len(store.data) != 0 {
		t.Errorf("failed embeds must not be cached, found %d entries", len(store.data))
	}
}
