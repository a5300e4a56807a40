package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// LoggingMiddleware logs one line per request and echoes a request id.
func LoggingMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, reqID)

			rec := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			entry := log.WithFields(logrus.Fields{
				"request_id": reqID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"route":      metrics.RouteTemplate(r),
				"status":     rec.statusCode,
				"duration":   time.Since(start).String(),
			})
			if rec.statusCode >= http.StatusInternalServerError {
				entry.Error("request failed")
			} else {
				entry.Info("request handled")
			}
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

// RateLimiter keeps one token bucket per caller: the session token when it
// belongs to a live session, the remote address otherwise.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*bucket
	rate     rate.Limit
	burst    int
	known    func(auth.Token) bool
	now      func() time.Time
	log      logrus.FieldLogger
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds a limiter allowing requestsPerSecond with the given
// burst. known reports whether a token belongs to a live session; tokens it
// rejects are limited by remote address.
func NewRateLimiter(requestsPerSecond float64, burst int, known func(auth.Token) bool, log logrus.FieldLogger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*bucket),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		known:    known,
		now:      time.Now,
		log:      log,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.limiters[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = b
	}
	b.lastSeen = rl.now()
	return b.limiter
}

func (rl *RateLimiter) key(r *http.Request) string {
	if tok := auth.ExtractToken(r); tok != "" && rl.known != nil && rl.known(tok) {
		return "session:" + string(tok)
	}
	return "addr:" + remoteHost(r)
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.key(r)
		if !rl.limiter(key).Allow() {
			rl.log.WithFields(logrus.Fields{"key": key, "path": r.URL.Path}).Warn("rate limit exceeded")
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Code:    "RATE_LIMITED",
				Message: "Too many requests.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup forgets buckets that have not been used for idle and returns how
// many were dropped.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	dropped := 0
	for key, b := range rl.limiters {
		if b.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of buckets currently held.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func remoteHost(r *http.Request) string {
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i > 0 {
		return addr[:i]
	}
	return addr
}

// CORSMiddleware allows the configured origins; "*" allows any. Preflight
// requests from an allowed origin are answered directly when routable reports
// that the requested method and path exist; everything else goes to next.
func CORSMiddleware(allowedOrigins []string, routable func(*http.Request) bool) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !(allowAll || allowed[origin]) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+auth.SessionHeader)
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" &&
				(routable == nil || routable(r)) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
