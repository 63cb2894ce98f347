package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	rateLimiter     *ratelimit.Limiter
	corsAllowOrigin string
	maxBodyBytes    int64
	shutdownTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	CORSAllowOrigin string
	RateLimit       *ratelimit.Config // nil uses ratelimit.LoadConfig
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.CORSAllowOrigin == "" {
		cfg.CORSAllowOrigin = "*"
	}
	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig()
	}

	s := &Server{
		rateLimiter:     ratelimit.NewLimiter(rateCfg),
		corsAllowOrigin: cfg.CORSAllowOrigin,
		maxBodyBytes:    cfg.MaxBodyBytes,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /parse-resume", s.handleParseResume)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withRecover(s.withCORS(s.withRateLimit(mux)))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Dur("timeout", s.shutdownTimeout).Msg("graceful shutdown timed out, closing open connections")
		_ = s.httpServer.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withLogging assigns a request ID and logs one event per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		logger.FromContext(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// withRecover turns handler panics into 500 responses.
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.FromContext(r.Context()).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				s.errorResponse(w, errors.New("panic"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
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

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes err as JSON with the status from HTTPStatus.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), errorBody(err))
}

// extractClientID extracts the client identifier from the request.
// Only RemoteAddr is trusted; X-Forwarded-For is ignored.
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		// round up so clients never retry early
		seconds := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	logger.FromContext(r.Context()).Warn().
		Str("client", extractClientID(r)).
		Int("limit", info.Limit).
		Dur("retry_after", info.RetryAfter).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
