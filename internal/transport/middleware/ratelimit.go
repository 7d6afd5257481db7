package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// RateLimiter hands out per-client token buckets. Buckets are kept in a
// bounded LRU and forgotten after idle without requests; a forgotten client
// starts again with a full bucket.
type RateLimiter struct {
	maxClients int
	idle       time.Duration
	now        func() time.Time
}

// NewRateLimiter creates a limiter tracking at most maxClients addresses per
// limited route group.
func NewRateLimiter(maxClients int, idle time.Duration) *RateLimiter {
	return &RateLimiter{maxClients: maxClients, idle: idle, now: time.Now}
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limit returns middleware allowing maxPerMinute requests per client IP,
// with bursts up to maxPerMinute. Each call gets its own set of buckets.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	capacity := float64(maxPerMinute)
	perSecond := capacity / 60
	buckets := expirable.NewLRU[string, *bucket](rl.maxClients, nil, rl.idle)
	var mu sync.Mutex

	take := func(key string) (bool, time.Duration) {
		mu.Lock()
		defer mu.Unlock()

		now := rl.now()
		b, ok := buckets.Get(key)
		if !ok {
			b = &bucket{tokens: capacity, lastRefill: now}
		}
		b.tokens = math.Min(capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*perSecond)
		b.lastRefill = now
		// Add refreshes the idle timer.
		buckets.Add(key, b)

		if b.tokens < 1 {
			wait := time.Duration((1 - b.tokens) / perSecond * float64(time.Second))
			return false, wait
		}
		b.tokens--
		return true, 0
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := take(clientIP(r))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port so reconnecting clients share one bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
