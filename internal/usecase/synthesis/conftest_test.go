package synthesis

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type mockCompleter struct {
	completeFn func(ctx context.Context, input string) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, input string) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, input)
	}
	return "completed: " + input, nil
}

type mockRenderer struct {
	renderFn func(ctx context.Context, text, voice, instructions string) ([]byte, error)
}

func (m *mockRenderer) Render(ctx context.Context, text, voice, instructions string) ([]byte, error) {
	if m.renderFn != nil {
		return m.renderFn(ctx, text, voice, instructions)
	}
	return []byte("mp3:" + voice + ":" + text), nil
}

func newTestService(t *testing.T, answer, direction *mockCompleter, renderer *mockRenderer, voice string) *Service {
	t.Helper()
	return New(Config{
		Answer:    answer,
		Direction: direction,
		Renderer:  renderer,
		Voice:     voice,
		AudioDir:  t.TempDir(),
		Logger:    zap.NewNop(),
	})
}
