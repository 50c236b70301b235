package security

import (
	"sync"
	"time"
)

// RateLimiter is a token-bucket limiter keyed by caller identity. Buckets
// refill at perMinute tokens per rolling minute up to burst capacity.
// Safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute float64
	burst     float64
	now       func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter builds a limiter; perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: float64(perMinute),
		burst:     float64(burst),
		now:       time.Now,
	}
}

// Allow takes one token for the identity. When the bucket is empty it
// returns false plus the estimated wait until the next token.
func (r *RateLimiter) Allow(identity string) (bool, time.Duration) {
	if r == nil || r.perMinute <= 0 {
		return true, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[identity]
	if !ok {
		b = &bucket{tokens: r.burst, last: now}
		r.buckets[identity] = b
	}

	refill := now.Sub(b.last).Minutes() * r.perMinute
	b.tokens = b.tokens + refill
	if b.tokens > r.burst {
		b.tokens = r.burst
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	deficit := 1 - b.tokens
	wait := time.Duration(deficit / r.perMinute * float64(time.Minute))
	return false, wait
}
