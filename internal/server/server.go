// Package server provides the HTTP API for resume scoring and job ranking.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/fitscore/internal/ats"
	"github.com/jonathan/fitscore/internal/db"
	"github.com/jonathan/fitscore/internal/matching"
	"github.com/jonathan/fitscore/internal/server/ratelimit"
	"github.com/jonathan/fitscore/internal/types"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes        = 5 << 20
	defaultCatalogLimit = 1000
)

type ctxKey int

const requestIDKey ctxKey = iota

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	checker      *ats.Checker
	ranker       *matching.Ranker
	source       db.JobSource
	rateLimiter  *ratelimit.Limiter
	metrics      *metrics
	validate     *validator.Validate
	logger       *slog.Logger
	catalogLimit int
}

// Config holds server configuration
type Config struct {
	Port int
	// CatalogLimit caps the records read from the catalog per rank request.
	CatalogLimit int
	// RateLimit defaults to the environment configuration when nil.
	RateLimit *ratelimit.Config
	Logger    *slog.Logger
}

// New creates a new server instance. source may be nil, in which case /rank requires inline jobs.
func New(cfg Config, checker *ats.Checker, ranker *matching.Ranker, source db.JobSource) (*Server, error) {
	if checker == nil || ranker == nil {
		return nil, errors.New("server requires a checker and a ranker")
	}

	s := &Server{
		checker:      checker,
		ranker:       ranker,
		source:       source,
		rateLimiter:  ratelimit.NewLimiter(cfg.RateLimit),
		metrics:      newMetrics(),
		validate:     validator.New(),
		logger:       cfg.Logger,
		catalogLimit: cfg.CatalogLimit,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.catalogLimit <= 0 {
		s.catalogLimit = defaultCatalogLimit
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRequestID(s.withCORS(s.withRateLimit(s.withLogging(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is done or the process receives SIGINT or SIGTERM, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops the rate limiter and closes the catalog source.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if s.source != nil {
		s.source.Close()
	}
}

// withRequestID propagates or assigns a request id.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withCORS adds CORS headers and answers preflights before any rate limiting.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and records its metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		s.metrics.observe(r.Method, path, rec.status, elapsed)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
			"request_id", requestID(r.Context()),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"catalog": s.source != nil,
	})
}

type scoreRequest struct {
	Resume         string `json:"resume" validate:"required,max=200000"`
	JobDescription string `json:"job_description,omitempty" validate:"max=200000"`
}

// handleScore scores a resume, optionally against a job description.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !s.decode(w, r, &req) {
		return
	}

	score, err := s.checker.Score(req.Resume, req.JobDescription)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.metrics.scores.WithLabelValues("resume").Observe(float64(score.Overall))
	s.jsonResponse(w, http.StatusOK, score)
}

type rankRequest struct {
	Profile types.ProfileQuery `json:"profile"`
	Search  string             `json:"search,omitempty" validate:"max=200"`
	// Jobs is optional; when absent the configured catalog is ranked.
	Jobs  []types.JobRecord `json:"jobs,omitempty" validate:"omitempty,max=10000,dive"`
	Limit int               `json:"limit,omitempty" validate:"min=0,max=100"`
}

// handleRank ranks inline jobs or the catalog against a profile.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if !s.decode(w, r, &req) {
		return
	}

	jobs := req.Jobs
	if jobs == nil {
		if s.source == nil {
			s.errorFrom(w, r, ErrNoCatalog)
			return
		}
		var err error
		jobs, err = s.source.ListJobRecords(r.Context(), s.catalogLimit)
		if err != nil {
			s.errorFrom(w, r, fmt.Errorf("failed to load catalog: %w", err))
			return
		}
	}

	ranking, err := s.ranker.RankDetailed(r.Context(), req.Profile, req.Search, jobs)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if req.Limit > 0 && len(ranking.Matches) > req.Limit {
		ranking.Matches = ranking.Matches[:req.Limit]
	}

	s.metrics.ranked.Add(float64(ranking.Scored))
	s.metrics.warnings.Add(float64(len(ranking.Warnings)))
	for _, m := range ranking.Matches {
		s.metrics.scores.WithLabelValues("match").Observe(float64(m.Score))
	}
	s.jsonResponse(w, http.StatusOK, ranking)
}

// decode reads and validates a JSON body. It writes the error response itself and reports success.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorFrom(w, r, fromValidator(err))
		return false
	}
	return true
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom maps err to a status and writes it. Server-side failures are logged.
func (s *Server) errorFrom(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", requestID(r.Context()))
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID uses the IP address from RemoteAddr. Forwarded headers are not trusted.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := max(int(info.RetryAfter.Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		"client", extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset", info.ResetTime.Format(time.RFC3339),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
