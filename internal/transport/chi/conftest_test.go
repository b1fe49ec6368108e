package chi

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
	pipelineuc "github.com/docvoice/docvoice/internal/usecase/pipeline"
	"github.com/docvoice/docvoice/internal/usecase/retrieval"
	"github.com/docvoice/docvoice/internal/usecase/synthesis"
)

type fakeProvisioner struct{}

func (fakeProvisioner) EnsureCollection(context.Context, string, int) error { return nil }

type fakeProber struct{}

func (fakeProber) ProbeDimension(context.Context) (int, error) { return 4, nil }

type fakeCrawler struct {
	err error
}

func (f fakeCrawler) Crawl(context.Context, string) ([]domain.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Page{{Content: "body", URL: "https://d/1"}}, nil
}

type fakeIndexer struct{}

func (fakeIndexer) IndexPages(_ context.Context, _ string, pages []domain.Page) (int, error) {
	return len(pages), nil
}

type fakeRetriever struct{}

func (fakeRetriever) Retrieve(_ context.Context, _, _ string) (*retrieval.Context, error) {
	return &retrieval.Context{
		Prompt:     "prompt",
		Results:    []domain.SearchResult{{Page: domain.Page{URL: "https://d/1"}, Score: 0.9}},
		VectorSize: 4,
	}, nil
}

type fakeSynthesizer struct{}

func (fakeSynthesizer) Synthesize(context.Context, string) (*synthesis.Answer, error) {
	return &synthesis.Answer{Text: "spoken answer", Directions: "calm", AudioPath: "/tmp/r.mp3"}, nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func newTestPipeline(t *testing.T, crawler pipelineuc.Crawler) *pipelineuc.Service {
	t.Helper()
	return pipelineuc.New(
		fakeProvisioner{}, fakeProber{},
		crawler, fakeIndexer{},
		fakeRetriever{}, fakeSynthesizer{},
		"docs_embeddings", zap.NewNop(),
	)
}
