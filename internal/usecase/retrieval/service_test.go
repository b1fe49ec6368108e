package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docvoice/docvoice/internal/domain"
)

func TestRetrieve_BuildsPromptInResultOrder(t *testing.T) {
	index := &mockIndex{
		searchFn: func(_ context.Context, _ string, _ []float32, k int) ([]domain.SearchResult, error) {
			if k != 3 {
				t.Errorf("k: got %d, want default 3", k)
			}
			return []domain.SearchResult{
				searchResult("https://d/install", "Run the installer.", 0.95),
				searchResult("https://d/config", "Edit config.yaml.", 0.80),
			}, nil
		},
	}

	svc := newTestService(index, &mockEmbedder{}, 0)

	rctx, err := svc.Retrieve(context.Background(), "docs_embeddings", "how do I install?")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}

	want := "Based on the following documentation:\n\n" +
		"From https://d/install:\nRun the installer.\n\n" +
		"From https://d/config:\nEdit config.yaml.\n\n" +
		"\nUser Question: how do I install?\n\n" +
		"Please provide a clear, concise answer that can be easily spoken out loud."
	if rctx.Prompt != want {
		t.Errorf("prompt mismatch:\ngot:  %q\nwant: %q", rctx.Prompt, want)
	}
	if len(rctx.Results) != 2 {
		t.Errorf("results: got %d, want 2", len(rctx.Results))
	}
	if rctx.VectorSize != 2 {
		t.Errorf("vector size: got %d, want 2", rctx.VectorSize)
	}
}

func TestRetrieve_EmptySearchReturnsNoResults(t *testing.T) {
	index := &mockIndex{
		searchFn: func(context.Context, string, []float32, int) ([]domain.SearchResult, error) {
			return nil, nil
		},
	}

	svc := newTestService(index, &mockEmbedder{}, 3)

	_, err := svc.Retrieve(context.Background(), "docs_embeddings", "anything")
	if !errors.Is(err, domain.ErrNoResults) {
		t.Errorf("got %v, want ErrNoResults", err)
	}
}

func TestRetrieve_EmbedErrorPropagates(t *testing.T) {
	embed := &mockEmbedder{
		embedFn: func(context.Context, string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{}, domain.ErrEmbeddingProviderError
		},
	}

	svc := newTestService(&mockIndex{}, embed, 3)

	_, err := svc.Retrieve(context.Background(), "docs_embeddings", "q")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("got %v, want ErrEmbeddingProviderError", err)
	}
}

func TestRetrieve_CustomTopK(t *testing.T) {
	var gotK int
	index := &mockIndex{
		searchFn: func(_ context.Context, _ string, _ []float32, k int) ([]domain.SearchResult, error) {
			gotK = k
			return []domain.SearchResult{searchResult("https://d/1", "x", 1)}, nil
		},
	}

	svc := newTestService(index, &mockEmbedder{}, 7)

	if _, err := svc.Retrieve(context.Background(), "c", "q"); err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if gotK != 7 {
		t.Errorf("k: got %d, want 7", gotK)
	}
}

func TestBuildPrompt_UnknownURLFallback(t *testing.T) {
	prompt := buildPrompt("q", []domain.SearchResult{searchResult("", "orphan content", 0.5)})
	if !strings.Contains(prompt, "From Unknown URL:\norphan content") {
		t.Errorf("prompt: %q", prompt)
	}
}
