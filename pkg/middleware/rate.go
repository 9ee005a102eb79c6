// Package middleware provides the HTTP middleware stack for the portfolio
// backend: CORS, per-IP rate limiting, request logging, panic recovery, and
// an optional bearer-token guard.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// bucket tracks a fixed-window request count for one IP.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

// RateLimiter limits each client IP to max requests per window, with an
// allow-list of exempt IPs.
type RateLimiter struct {
	max    int
	window time.Duration
	allow  map[string]struct{}

	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
}

// NewRateLimiter builds a limiter. allowList IPs bypass the limiter
// entirely.
func NewRateLimiter(max int, window time.Duration, allowList []string) *RateLimiter {
	rl := &RateLimiter{
		max:     max,
		window:  window,
		allow:   make(map[string]struct{}, len(allowList)),
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	for _, ip := range allowList {
		rl.allow[ip] = struct{}{}
	}
	go rl.evictLoop()
	return rl
}

// evictLoop drops buckets whose window has expired so long-running servers
// don't grow without bound.
func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				b.mu.Lock()
				expired := now.After(b.resetAt)
				b.mu.Unlock()
				if expired {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the background eviction goroutine.
func (rl *RateLimiter) Close() { close(rl.stop) }

func (rl *RateLimiter) getBucket(ip string) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets[ip]; ok {
		return b
	}
	b := &bucket{resetAt: time.Now().Add(rl.window)}
	rl.buckets[ip] = b
	return b
}

// Middleware returns the http middleware enforcing the limit.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if _, exempt := rl.allow[ip]; exempt {
				next.ServeHTTP(w, r)
				return
			}

			if !rl.getBucket(ip).allow(rl.max, rl.window) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"status":429,"message":"Too Many Requests"}`)) //nolint:errcheck
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// first hop is the client
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
