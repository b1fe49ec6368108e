package pipeline

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/usecase/retrieval"
	"github.com/docvoice/docvoice/internal/usecase/synthesis"
)

// memIndex is a brute-force in-memory vector store. It backs both the
// provisioning contract and the search contracts of the real services.
type memIndex struct {
	mu        sync.Mutex
	dimension int
	points    map[string][]domain.IndexedPoint
}

func newMemIndex() *memIndex {
	return &memIndex{points: map[string][]domain.IndexedPoint{}}
}

func (m *memIndex) EnsureCollection(_ context.Context, name string, dimension int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimension = dimension
	if _, ok := m.points[name]; !ok {
		m.points[name] = nil
	}
	return nil
}

func (m *memIndex) Upsert(_ context.Context, collection string, point domain.IndexedPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[collection] = append(m.points[collection], point)
	return nil
}

func (m *memIndex) Count(_ context.Context, collection string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points[collection]), nil
}

func (m *memIndex) Search(_ context.Context, collection string, vector []float32, k int) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]domain.SearchResult, 0, len(m.points[collection]))
	for _, p := range m.points[collection] {
		results = append(results, domain.SearchResult{Page: p.Page, Score: cosine(vector, p.Vector)})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// keywordEmbedder maps text deterministically onto keyword-count axes.
type keywordEmbedder struct{}

var embedKeywords = []string{"install", "configure", "deploy", "query"}

func (keywordEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	lower := strings.ToLower(text)
	v := make([]float32, len(embedKeywords))
	for i, k := range embedKeywords {
		v[i] = float32(strings.Count(lower, k))
	}
	return domain.EmbeddingResult{Embedding: v, TotalTokens: len(text)}, nil
}

func (e keywordEmbedder) ProbeDimension(ctx context.Context) (int, error) {
	result, err := e.Embed(ctx, "probe")
	if err != nil {
		return 0, err
	}
	return len(result.Embedding), nil
}

// mockCrawlClient feeds a fixed page set through the crawl cursor protocol.
type mockCrawlClient struct {
	pages []domain.Page
}

func (m *mockCrawlClient) Start(context.Context, string, int, []string) (string, error) {
	return "http://status.local/job-1", nil
}

func (m *mockCrawlClient) Poll(context.Context, string) (*domain.CrawlBatch, error) {
	return &domain.CrawlBatch{
		Status:    domain.CrawlStatusCompleted,
		Completed: len(m.pages),
		Total:     len(m.pages),
		Pages:     m.pages,
	}, nil
}

// staticCompleter echoes a fixed transform of its input.
type staticCompleter struct {
	prefix string
}

func (c staticCompleter) Complete(_ context.Context, input string) (string, error) {
	return c.prefix + input, nil
}

// byteRenderer returns fixed audio bytes.
type byteRenderer struct{}

func (byteRenderer) Render(context.Context, string, string, string) ([]byte, error) {
	return []byte("mp3-bytes"), nil
}

// Contract-level mocks for the orchestrator unit tests.

type mockProber struct {
	probeFn func(ctx context.Context) (int, error)
}

func (m *mockProber) ProbeDimension(ctx context.Context) (int, error) {
	if m.probeFn != nil {
		return m.probeFn(ctx)
	}
	return 4, nil
}

type mockCrawler struct {
	crawlFn func(ctx context.Context, siteURL string) ([]domain.Page, error)
	calls   int
}

func (m *mockCrawler) Crawl(ctx context.Context, siteURL string) ([]domain.Page, error) {
	m.calls++
	if m.crawlFn != nil {
		return m.crawlFn(ctx, siteURL)
	}
	return nil, nil
}

type mockIndexer struct {
	indexFn func(ctx context.Context, collection string, pages []domain.Page) (int, error)
	calls   int
}

func (m *mockIndexer) IndexPages(ctx context.Context, collection string, pages []domain.Page) (int, error) {
	m.calls++
	if m.indexFn != nil {
		return m.indexFn(ctx, collection, pages)
	}
	return len(pages), nil
}

type mockRetriever struct {
	retrieveFn func(ctx context.Context, collection, query string) (*retrieval.Context, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, collection, query string) (*retrieval.Context, error) {
	if m.retrieveFn != nil {
		return m.retrieveFn(ctx, collection, query)
	}
	return &retrieval.Context{Prompt: "prompt", VectorSize: 4}, nil
}

type mockSynthesizer struct {
	synthFn func(ctx context.Context, prompt string) (*synthesis.Answer, error)
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, prompt string) (*synthesis.Answer, error) {
	if m.synthFn != nil {
		return m.synthFn(ctx, prompt)
	}
	return &synthesis.Answer{Text: "text", Directions: "dirs", AudioPath: "/tmp/a.mp3"}, nil
}
