package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/config"
	dbRedis "github.com/docvoice/docvoice/internal/db/redis"
	"github.com/docvoice/docvoice/internal/domain"
	logpkg "github.com/docvoice/docvoice/internal/logger"
	"github.com/docvoice/docvoice/internal/metrics"
	"github.com/docvoice/docvoice/internal/repository/embcache"
	indexrepo "github.com/docvoice/docvoice/internal/repository/index"
	chiTransport "github.com/docvoice/docvoice/internal/transport/chi"
	"github.com/docvoice/docvoice/internal/transport/firecrawl"
	openaiTransport "github.com/docvoice/docvoice/internal/transport/openai"
	crawluc "github.com/docvoice/docvoice/internal/usecase/crawl"
	indexinguc "github.com/docvoice/docvoice/internal/usecase/indexing"
	pipelineuc "github.com/docvoice/docvoice/internal/usecase/pipeline"
	retrievaluc "github.com/docvoice/docvoice/internal/usecase/retrieval"
	synthesisuc "github.com/docvoice/docvoice/internal/usecase/synthesis"
	"github.com/docvoice/docvoice/internal/version"
)

func main() {
	// Local development: pick up keys from .env if present.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docvoice server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Embedder chain: OpenAI -> cache decorator. The dimension probe always
	// hits the base provider so collection setup never reads a stale cache.
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	var embedder domain.Embedder = baseEmbedder
	if cfg.Embedding.Cache {
		embedder = embcache.New(baseEmbedder, store, metrics.EmbeddingCacheTotal, logger)
	}
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Bool("cache", cfg.Embedding.Cache),
	)

	repo := indexrepo.New(store).WithHNSW(indexrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})

	crawlClient := firecrawl.NewClient(&firecrawl.Config{
		BaseURL: cfg.Crawl.BaseURL,
		APIKey:  cfg.Crawl.APIKey,
		Logger:  logger,
	})
	crawlSvc := crawluc.New(crawlClient, crawluc.Config{
		PageLimit: cfg.Crawl.PageLimit,
		Formats:   cfg.Crawl.Formats,
		PollDelay: time.Duration(cfg.Crawl.PollDelaySec) * time.Second,
		OutputDir: cfg.Crawl.OutputDir,
	}, logger)

	indexSvc := indexinguc.New(repo, embedder, logger)
	retrievalSvc := retrievaluc.New(repo, embedder, cfg.Index.TopK, logger)

	answerRole := synthesisuc.AnswerRole()
	directionRole := synthesisuc.DirectionRole()
	synthSvc := synthesisuc.New(synthesisuc.Config{
		Answer: openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
			APIKey:       cfg.Synthesis.APIKey,
			BaseURL:      cfg.Synthesis.BaseURL,
			Role:         answerRole.Name,
			Instructions: answerRole.Instructions,
			Model:        cfg.Synthesis.AnswerModel,
			Logger:       logger,
		}),
		Direction: openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
			APIKey:       cfg.Synthesis.APIKey,
			BaseURL:      cfg.Synthesis.BaseURL,
			Role:         directionRole.Name,
			Instructions: directionRole.Instructions,
			Model:        cfg.Synthesis.DirectionModel,
			Logger:       logger,
		}),
		Renderer: openaiTransport.NewSpeech(&openaiTransport.SpeechConfig{
			APIKey:  cfg.Synthesis.APIKey,
			BaseURL: cfg.Synthesis.BaseURL,
			Model:   cfg.Synthesis.SpeechModel,
			Logger:  logger,
		}),
		Voice:    cfg.Synthesis.Voice,
		AudioDir: cfg.Synthesis.AudioDir,
		Logger:   logger,
	})

	pipeline := pipelineuc.New(
		repo, baseEmbedder,
		crawlSvc, indexSvc,
		retrievalSvc, synthSvc,
		cfg.Storage.Collection, logger,
	)

	server := chiTransport.NewServer(pipeline, store, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
