// Package config loads the docvoice YAML configuration with environment
// variable expansion and per-environment files (local, dev, prod).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docvoice/docvoice/internal/domain"
	"github.com/docvoice/docvoice/internal/usecase/synthesis"
)

// Config holds the docvoice service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Crawl     CrawlConfig     `yaml:"crawl"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Index     IndexConfig     `yaml:"index"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CrawlConfig holds crawl provider settings.
type CrawlConfig struct {
	BaseURL      string   `yaml:"base_url"`
	APIKey       string   `yaml:"api_key"`
	PageLimit    int      `yaml:"page_limit"`
	Formats      []string `yaml:"formats"`
	PollDelaySec int      `yaml:"poll_delay_sec"`
	// OutputDir, when set, receives one markdown file per crawled page.
	OutputDir string `yaml:"output_dir"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	Cache      bool   `yaml:"cache"`
}

// SynthesisConfig holds answer and speech synthesis settings.
type SynthesisConfig struct {
	APIKey         string `yaml:"api_key"` // falls back to embedding.api_key
	BaseURL        string `yaml:"base_url"`
	AnswerModel    string `yaml:"answer_model"`
	DirectionModel string `yaml:"direction_model"`
	SpeechModel    string `yaml:"speech_model"`
	Voice          string `yaml:"voice"`
	AudioDir       string `yaml:"audio_dir"`
}

// IndexConfig holds HNSW index and retrieval settings.
type IndexConfig struct {
	HNSWM           int `yaml:"hnsw_m"`
	HNSWEFConstruct int `yaml:"hnsw_ef_construction"`
	TopK            int `yaml:"top_k"`
}

// StorageConfig holds vector collection settings.
type StorageConfig struct {
	Collection string `yaml:"collection"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Queries run two completions plus speech rendering.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Crawl.BaseURL == "" {
		c.Crawl.BaseURL = "https://api.firecrawl.dev"
	}
	if c.Crawl.PageLimit <= 0 {
		c.Crawl.PageLimit = 5
	}
	if len(c.Crawl.Formats) == 0 {
		c.Crawl.Formats = []string{"markdown", "html"}
	}
	if c.Crawl.PollDelaySec <= 0 {
		c.Crawl.PollDelaySec = 1
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Synthesis.APIKey == "" {
		c.Synthesis.APIKey = c.Embedding.APIKey
	}
	if c.Synthesis.BaseURL == "" {
		c.Synthesis.BaseURL = c.Embedding.BaseURL
	}
	if c.Synthesis.AnswerModel == "" {
		c.Synthesis.AnswerModel = synthesis.DefaultAnswerModel
	}
	if c.Synthesis.DirectionModel == "" {
		c.Synthesis.DirectionModel = synthesis.DefaultDirectionModel
	}
	if c.Synthesis.SpeechModel == "" {
		c.Synthesis.SpeechModel = synthesis.DefaultSpeechModel
	}
	if c.Synthesis.Voice == "" {
		c.Synthesis.Voice = synthesis.DefaultVoice
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 32
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 400
	}
	if c.Index.TopK <= 0 {
		c.Index.TopK = 3
	}
	if c.Storage.Collection == "" {
		c.Storage.Collection = "docs_embeddings"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http.port must be between 1 and 65535, got %d",
			domain.ErrConfiguration, c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("%w: database.addrs is required", domain.ErrConfiguration)
	}
	if c.Crawl.APIKey == "" {
		return fmt.Errorf("%w: crawl.api_key is required", domain.ErrConfiguration)
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding.api_key is required", domain.ErrConfiguration)
	}
	if !synthesis.ValidVoice(c.Synthesis.Voice) {
		return fmt.Errorf("%w: synthesis.voice %q is not supported (one of %s)",
			domain.ErrConfiguration, c.Synthesis.Voice, strings.Join(synthesis.Voices, ", "))
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
