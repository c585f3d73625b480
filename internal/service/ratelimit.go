package service

import (
	"sync"
	"time"
)

const (
	bucketSweepInterval = 5 * time.Minute
	bucketIdleCutoff    = 10 * time.Minute
)

// TokenBucket rate-limits callers per key (typically client IP) using the
// token bucket algorithm, entirely in memory. Safe for concurrent use.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // refill, tokens per second
	capacity float64 // burst ceiling
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewTokenBucket returns a limiter allowing a burst of capacity requests
// per key, refilling at rate tokens per second. A background goroutine
// sweeps buckets that have gone idle.
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	tb := &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
	}
	go tb.sweep()
	return tb
}

// Allow consumes one token for key and reports whether the caller may
// proceed. A key seen for the first time starts with a full bucket.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, seen: now}
		tb.buckets[key] = b
	}

	b.tokens = min(b.tokens+now.Sub(b.seen).Seconds()*tb.rate, tb.capacity)
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (tb *TokenBucket) sweep() {
	ticker := time.NewTicker(bucketSweepInterval)
	for range ticker.C {
		tb.mu.Lock()
		cutoff := time.Now().Add(-bucketIdleCutoff)
		for key, b := range tb.buckets {
			if b.seen.Before(cutoff) {
				delete(tb.buckets, key)
			}
		}
		tb.mu.Unlock()
	}
}
