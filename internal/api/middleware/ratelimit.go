package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"
)

// RequestCost weighs a request against the client's token bucket.
// Synthesis and streaming calls burn paid upstream quota, so they cost
// more than plain JSON endpoints; a zero cost exempts the request.
type RequestCost func(r *http.Request) float64

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket with request-weighted
// costs. Clients are keyed by IP; the router installs chi's RealIP
// middleware ahead of this one, so RemoteAddr already holds the real
// client address.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	refill   float64 // tokens per second
	capacity float64
	cost     RequestCost
}

func NewRateLimiter(refillPerSec float64, capacity int, cost RequestCost) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		refill:   refillPerSec,
		capacity: float64(capacity),
		cost:     cost,
	}
	go rl.cleanup()
	return rl
}

// clientKey strips the port RealIP leaves behind on direct connections
// so one client maps to one bucket regardless of source port.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cost := rl.cost(r)
		if cost <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := clientKey(r)

		rl.mu.Lock()
		b, exists := rl.buckets[key]
		if !exists {
			b = &bucket{tokens: rl.capacity, lastSeen: time.Now()}
			rl.buckets[key] = b
		}

		elapsed := time.Since(b.lastSeen).Seconds()
		b.tokens += elapsed * rl.refill
		if b.tokens > rl.capacity {
			b.tokens = rl.capacity
		}
		b.lastSeen = time.Now()

		if b.tokens < cost {
			rl.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
			return
		}

		b.tokens -= cost
		rl.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
