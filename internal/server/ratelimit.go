package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"hiresight/internal/errors"

	"golang.org/x/time/rate"
)

const defaultEvictionAge = 10 * time.Minute

// RateLimiter maintains one token bucket per client key (IP or API key).
// Buckets that stay idle longer than the eviction age are dropped by a
// background sweep so the map does not grow without bound.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	logger   *errors.Logger
}

// NewRateLimiter creates a rate limiter allowing requestsPerMin sustained
// requests with the given burst capacity. evictionAge bounds how long an
// idle client's bucket is kept; zero selects the default.
func NewRateLimiter(requestsPerMin int, evictionAge time.Duration, burstCapacity int, logger *errors.Logger) *RateLimiter {
	if evictionAge <= 0 {
		evictionAge = defaultEvictionAge
	}

	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burstCapacity,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go rl.sweepLoop(evictionAge)
	return rl
}

// Allow reports whether a request for the given client key may proceed.
// Non-blocking; a denied request is simply rejected.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = time.Now()
	rl.mu.Unlock()

	return limiter.Allow()
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]any{
		"active_limiters": len(rl.limiters),
		"rate_per_second": float64(rl.rate),
		"rate_per_minute": float64(rl.rate) * 60.0,
		"burst_capacity":  rl.burst,
	}
}

func (rl *RateLimiter) sweepLoop(evictionAge time.Duration) {
	ticker := time.NewTicker(evictionAge)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(evictionAge)
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle(evictionAge time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, lastSeen := range rl.lastSeen {
		if now.Sub(lastSeen) > evictionAge {
			delete(rl.limiters, key)
			delete(rl.lastSeen, key)
		}
	}

	if rl.logger != nil {
		rl.logger.Debug("Rate limiter sweep completed",
			"remaining_limiters", len(rl.limiters))
	}
}

// Close stops the background sweep. Should be called when shutting down the server.
func (rl *RateLimiter) Close() {
	close(rl.done)
}

// rateLimitMiddleware creates rate limiting middleware using golang.org/x/time/rate.
func (s *Server) rateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if s.RateLimit == nil || !s.RateLimit.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP)
			if key == "" {
				next(w, r)
				return
			}

			if !s.RateLimiter.Allow(key) {
				s.Logger.Info("Rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"client_ip", getClientIP(r))
				writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

// rateLimitKey picks the bucket key for a request: API key when configured
// and present, client IP otherwise. Empty means the request is not limited.
func rateLimitKey(r *http.Request, byAPIKey, byIP bool) string {
	if byAPIKey {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}
		if apiKey != "" {
			return "api:" + apiKey
		}
	}

	if byIP {
		return "ip:" + getClientIP(r)
	}

	return ""
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (for proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP in the list
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return xri
		}
	}

	// Fall back to RemoteAddr
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP parses the first valid IP from a comma-separated list
func parseFirstIP(ips string) string {
	for ip := range strings.SplitSeq(ips, ",") {
		ip = strings.TrimSpace(ip)
		if parsed := net.ParseIP(ip); parsed != nil {
			return ip
		}
	}
	return ""
}
