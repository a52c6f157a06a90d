package handlers

import (
	"net/http"
	"time"

	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/security"
	"learnmate/internal/service"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions    *service.SessionService
	log         *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *service.SessionService, log *logger.Logger, m *metrics.Metrics, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		sessions:    sessions,
		log:         log.With("component", "http"),
		metrics:     m,
		rateLimiter: rateLimiter,
	}
}

// RequireSession rejects requests when no account is signed in
func (m *Middleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.sessions.Current() == nil {
			respondWithError(w, m.log, service.ErrNoActiveSession)
			return
		}
		next(w, r)
	}
}

// RateLimit limits attempts per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimiter != nil && !m.rateLimiter.Allow(security.GetClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			respondJSON(w, http.StatusTooManyRequests, APIError{Code: "rate_limited", Message: ErrTooManyRequests})
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs every request and records its latency
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
		m.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", elapsed)
	})
}
