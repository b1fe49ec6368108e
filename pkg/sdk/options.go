package docvoice

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	openaiKey      string
	openaiBaseURL  string
	embeddingModel string
	embeddingCache bool

	firecrawlKey     string
	firecrawlBaseURL string
	pageLimit        int
	pollDelay        time.Duration
	outputDir        string

	answerModel    string
	directionModel string
	speechModel    string
	voice          string
	audioDir       string

	collection string
	topK       int

	logger *zap.Logger
}

// WithRedis sets the Redis address and password.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisAddrs sets multiple Redis addresses (cluster or sentinel).
func WithRedisAddrs(addrs []string) Option {
	return optionFunc(func(c *clientConfig) { c.addrs = addrs })
}

// WithRedisAuth sets the Redis username and logical database.
func WithRedisAuth(username string, db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.db = db
	})
}

// WithOpenAI sets the API key used for embeddings, completions, and speech.
func WithOpenAI(apiKey string) Option {
	return optionFunc(func(c *clientConfig) { c.openaiKey = apiKey })
}

// WithOpenAIBaseURL points the client at an OpenAI-compatible endpoint.
func WithOpenAIBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) { c.openaiBaseURL = baseURL })
}

// WithEmbeddingModel overrides the embedding model.
func WithEmbeddingModel(model string) Option {
	return optionFunc(func(c *clientConfig) { c.embeddingModel = model })
}

// WithEmbeddingCache enables the Redis-backed embedding cache.
func WithEmbeddingCache() Option {
	return optionFunc(func(c *clientConfig) { c.embeddingCache = true })
}

// WithFirecrawl sets the crawl provider API key.
func WithFirecrawl(apiKey string) Option {
	return optionFunc(func(c *clientConfig) { c.firecrawlKey = apiKey })
}

// WithFirecrawlBaseURL points the client at a self-hosted crawl provider.
func WithFirecrawlBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) { c.firecrawlBaseURL = baseURL })
}

// WithPageLimit bounds how many pages a crawl may fetch.
func WithPageLimit(limit int) Option {
	return optionFunc(func(c *clientConfig) { c.pageLimit = limit })
}

// WithPageOutputDir persists each crawled page as a markdown file.
func WithPageOutputDir(dir string) Option {
	return optionFunc(func(c *clientConfig) { c.outputDir = dir })
}

// WithModels overrides the answer, direction, and speech models.
func WithModels(answer, direction, speech string) Option {
	return optionFunc(func(c *clientConfig) {
		c.answerModel = answer
		c.directionModel = direction
		c.speechModel = speech
	})
}

// WithVoice selects the speech voice.
func WithVoice(voice string) Option {
	return optionFunc(func(c *clientConfig) { c.voice = voice })
}

// WithAudioDir sets where rendered mp3 answers are written.
func WithAudioDir(dir string) Option {
	return optionFunc(func(c *clientConfig) { c.audioDir = dir })
}

// WithCollection overrides the vector collection name.
func WithCollection(name string) Option {
	return optionFunc(func(c *clientConfig) { c.collection = name })
}

// WithTopK sets how many pages ground each answer.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) { c.topK = k })
}

// WithLogger attaches a zap logger; default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = logger })
}
