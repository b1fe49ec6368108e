// Package chi exposes the pipeline over HTTP: setup, query, health, and
// Prometheus metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
	logpkg "github.com/docvoice/docvoice/internal/logger"
	"github.com/docvoice/docvoice/internal/metrics"
	pipelineuc "github.com/docvoice/docvoice/internal/usecase/pipeline"
)

// Error codes returned to clients.
const (
	codeBadRequest     = "bad_request"
	codeUnauthorized   = "unauthorized"
	codeSetupFailed    = "setup_failed"
	codeCrawlFailed    = "crawl_failed"
	codeIndexingFailed = "indexing_failed"
	codeDimMismatch    = "vector_dim_mismatch"
	codeInternalError  = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type setupRequest struct {
	URL string `json:"url"`
}

type setupResponse struct {
	Status  string `json:"status"`
	SiteURL string `json:"site_url"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Pinger checks the backing store connection for health reporting.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP API over the pipeline orchestrator.
type Server struct {
	pipeline *pipelineuc.Service
	pinger   Pinger
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(pipeline *pipelineuc.Service, pinger Pinger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{pipeline: pipeline, pinger: pinger, logger: logger}
}

// Mount registers the API routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Post("/setup", s.Setup)
	r.Post("/query", s.Query)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Router builds a chi router with recovery, metrics, and auth middleware.
// The composition root assembles its own middleware stack; this one serves
// tests and simple embedding.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.loggerInjector)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))
	s.Mount(r)
	return r
}

func (s *Server) loggerInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logpkg.ContextWithLogger(r.Context(), s.logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Setup handles POST /setup: crawl and index a documentation site.
func (s *Server) Setup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "url is required")
		return
	}

	if err := s.pipeline.Setup(r.Context(), req.URL); err != nil {
		s.handleSetupError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, setupResponse{Status: "ready", SiteURL: req.URL})
}

// Query handles POST /query: answer a question about the indexed docs.
// The response is always an answer bundle; query failures are reported in
// its status, not as transport errors.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "query is required")
		return
	}

	bundle := s.pipeline.Ask(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, bundle)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	status := "healthy"
	httpStatus := http.StatusOK

	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			checks["store"] = "unreachable"
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	}

	if s.pipeline.Ready() {
		checks["index"] = "ready"
	} else {
		checks["index"] = "not_ready"
	}

	writeJSON(w, httpStatus, healthResponse{Status: status, Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleSetupError(ctx context.Context, w http.ResponseWriter, err error) {
	// The request-scoped logger carries the request id when the
	// composition root's middleware attached one.
	log := logpkg.FromContext(ctx)
	log.Warn("setup error", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrVectorDimMismatch):
		writeError(w, http.StatusConflict, codeDimMismatch, domain.ErrVectorDimMismatch.Error())
	case errors.Is(err, domain.ErrCrawl):
		writeError(w, http.StatusBadGateway, codeCrawlFailed, domain.ErrCrawl.Error())
	case errors.Is(err, domain.ErrIndexing):
		writeError(w, http.StatusBadGateway, codeIndexingFailed, domain.ErrIndexing.Error())
	case errors.Is(err, domain.ErrCollectionSetup):
		writeError(w, http.StatusInternalServerError, codeSetupFailed, domain.ErrCollectionSetup.Error())
	default:
		log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
