package embcache

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/db"
	"github.com/docvoice/docvoice/internal/domain"
)

type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

type mockEmbedder struct {
	calls  int
	result domain.EmbeddingResult
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func TestEmbed_CacheMissCallsInnerAndStores(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.5, -1.25},
		TotalTokens: 7,
	}}
	stored := map[string][]byte{}
	ms := &mockStore{
		setFn: func(_ context.Context, key string, value []byte) error {
			stored[key] = value
			return nil
		},
	}
	c := New(inner, ms, nil, zap.NewNop())

	res, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls: got %d, want 1", inner.calls)
	}
	if res.TotalTokens != 7 {
		t.Errorf("tokens: got %d, want 7", res.TotalTokens)
	}
	if len(stored) != 1 {
		t.Errorf("stored entries: got %d, want 1", len(stored))
	}
}

func TestEmbed_CacheHitSkipsInner(t *testing.T) {
	inner := &mockEmbedder{}
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return vectorToCacheBytes([]float32{1, 2, 3}), nil
		},
	}
	c := New(inner, ms, nil, zap.NewNop())

	res, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("inner calls: got %d, want 0", inner.calls)
	}
	if len(res.Embedding) != 3 || res.Embedding[2] != 3 {
		t.Errorf("embedding: got %v", res.Embedding)
	}
	if res.TotalTokens != 0 {
		t.Errorf("cache hit should consume no tokens, got %d", res.TotalTokens)
	}
}

func TestEmbed_CorruptCacheFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte{1, 2, 3}, nil // not a multiple of 4
		},
	}
	c := New(inner, ms, nil, zap.NewNop())

	if _, err := c.Embed(context.Background(), "hello"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls: got %d, want 1", inner.calls)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	wantErr := errors.New("provider down")
	inner := &mockEmbedder{err: wantErr}
	c := New(inner, &mockStore{}, nil, zap.NewNop())

	_, err := c.Embed(context.Background(), "hello")
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped %v", err, wantErr)
	}
}
