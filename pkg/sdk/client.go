package docvoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/db"
	dbRedis "github.com/docvoice/docvoice/internal/db/redis"
	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/repository/embcache"
	indexrepo "github.com/docvoice/docvoice/internal/repository/index"
	"github.com/docvoice/docvoice/internal/transport/firecrawl"
	openaiTransport "github.com/docvoice/docvoice/internal/transport/openai"
	crawluc "github.com/docvoice/docvoice/internal/usecase/crawl"
	indexinguc "github.com/docvoice/docvoice/internal/usecase/indexing"
	pipelineuc "github.com/docvoice/docvoice/internal/usecase/pipeline"
	retrievaluc "github.com/docvoice/docvoice/internal/usecase/retrieval"
	synthesisuc "github.com/docvoice/docvoice/internal/usecase/synthesis"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCollection       = "docs_embeddings"
	defaultEmbeddingModel   = "text-embedding-3-small"
)

// AnswerBundle is the structured result of one query.
type AnswerBundle = domain.AnswerBundle

// Diagnostics describes how a query was answered.
type Diagnostics = domain.Diagnostics

// pipelineUseCase allows test substitution of the orchestrator.
type pipelineUseCase interface {
	Setup(ctx context.Context, siteURL string) error
	Ask(ctx context.Context, query string) domain.AnswerBundle
	Ready() bool
}

// storeConn is the slice of db.Store the client itself needs.
type storeConn interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the docvoice embedded client.
type Client struct {
	store    storeConn
	pipeline pipelineUseCase
	logger   *zap.Logger
}

// New creates a docvoice Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		embeddingModel: defaultEmbeddingModel,
		collection:     defaultCollection,
		voice:          synthesisuc.DefaultVoice,
		answerModel:    synthesisuc.DefaultAnswerModel,
		directionModel: synthesisuc.DefaultDirectionModel,
		speechModel:    synthesisuc.DefaultSpeechModel,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docvoice: database address required (use WithRedis)")
	}
	if cfg.openaiKey == "" {
		return nil, errors.New("docvoice: OpenAI API key required (use WithOpenAI)")
	}
	if cfg.firecrawlKey == "" {
		return nil, errors.New("docvoice: Firecrawl API key required (use WithFirecrawl)")
	}
	if !synthesisuc.ValidVoice(cfg.voice) {
		return nil, fmt.Errorf("docvoice: unsupported voice %q", cfg.voice)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("docvoice: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docvoice: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:   cfg.openaiKey,
		BaseURL:  cfg.openaiBaseURL,
		Model:    cfg.embeddingModel,
		Provider: "openai",
		Logger:   cfg.logger,
	})
	var embedder domain.Embedder = baseEmbedder
	if cfg.embeddingCache {
		embedder = embcache.New(baseEmbedder, store, nil, cfg.logger)
	}

	repo := indexrepo.New(store)

	crawlBaseURL := cfg.firecrawlBaseURL
	if crawlBaseURL == "" {
		crawlBaseURL = "https://api.firecrawl.dev"
	}
	crawlClient := firecrawl.NewClient(&firecrawl.Config{
		BaseURL: crawlBaseURL,
		APIKey:  cfg.firecrawlKey,
		Logger:  cfg.logger,
	})

	crawlSvc := crawluc.New(crawlClient, crawluc.Config{
		PageLimit: cfg.pageLimit,
		PollDelay: cfg.pollDelay,
		OutputDir: cfg.outputDir,
	}, cfg.logger)

	synthSvc := synthesisuc.New(synthesisuc.Config{
		Answer:    newCompleter(cfg, synthesisuc.AnswerRole(), cfg.answerModel),
		Direction: newCompleter(cfg, synthesisuc.DirectionRole(), cfg.directionModel),
		Renderer: openaiTransport.NewSpeech(&openaiTransport.SpeechConfig{
			APIKey:  cfg.openaiKey,
			BaseURL: cfg.openaiBaseURL,
			Model:   cfg.speechModel,
			Logger:  cfg.logger,
		}),
		Voice:    cfg.voice,
		AudioDir: cfg.audioDir,
		Logger:   cfg.logger,
	})

	pipeline := pipelineuc.New(
		repo, baseEmbedder,
		crawlSvc,
		indexinguc.New(repo, embedder, cfg.logger),
		retrievaluc.New(repo, embedder, cfg.topK, cfg.logger),
		synthSvc,
		cfg.collection, cfg.logger,
	)

	return &Client{store: store, pipeline: pipeline, logger: cfg.logger}
}

func newCompleter(cfg *clientConfig, role synthesisuc.Role, model string) *openaiTransport.Completer {
	return openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		APIKey:       cfg.openaiKey,
		BaseURL:      cfg.openaiBaseURL,
		Role:         role.Name,
		Instructions: role.Instructions,
		Model:        model,
		Logger:       cfg.logger,
	})
}

// Setup crawls siteURL and indexes every page. It must complete before Ask.
func (c *Client) Setup(ctx context.Context, siteURL string) error {
	return c.pipeline.Setup(ctx, siteURL)
}

// Ask answers a question about the indexed documentation. The bundle is
// always returned; check its Status for failures.
func (c *Client) Ask(ctx context.Context, query string) AnswerBundle {
	return c.pipeline.Ask(ctx, query)
}

// Ready reports whether Setup has completed successfully.
func (c *Client) Ready() bool {
	return c.pipeline.Ready()
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "healthy" or "unhealthy"
	Checks map[string]string // component -> state
}

// Health checks the database connection and index readiness.
func (c *Client) Health(ctx context.Context) HealthStatus {
	checks := map[string]string{}
	status := "healthy"

	if err := c.store.Ping(ctx); err != nil {
		checks["store"] = "unreachable"
		status = "unhealthy"
	} else {
		checks["store"] = "ok"
	}

	if c.pipeline.Ready() {
		checks["index"] = "ready"
	} else {
		checks["index"] = "not_ready"
	}

	return HealthStatus{Status: status, Checks: checks}
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}
