package middleware

import (
	"sync"
	"time"
)

// RateLimitMessage is the fixed body returned on 429 responses.
const RateLimitMessage = "Troppe richieste. Riprova tra un minuto."

// sweepEvery controls how often expired records are purged: one sweep
// per this many lookups, so memory stays bounded without a background
// goroutine.
const sweepEvery = 256

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
}

type rateRecord struct {
	count  int
	expiry time.Time
}

// RateLimiter counts requests per client key over a fixed window. It is
// an explicit service object injected into the generation handler, not
// ambient package state. Process-local: a horizontally scaled deployment
// needs a shared store instead. Safe for concurrent use.
type RateLimiter struct {
	config RateLimitConfig

	mu      sync.Mutex
	records map[string]*rateRecord
	lookups int

	now func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:  config,
		records: make(map[string]*rateRecord),
		now:     time.Now,
	}
}

// Allow reports whether a request from the given client key fits in the
// current window. The first request of a window creates a fresh record;
// denied requests still count against the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	rl.lookups++
	if rl.lookups%sweepEvery == 0 {
		rl.sweep(now)
	}

	rec, ok := rl.records[key]
	if !ok || !now.Before(rec.expiry) {
		rl.records[key] = &rateRecord{count: 1, expiry: now.Add(rl.config.Window)}
		return true
	}

	rec.count++
	return rec.count <= rl.config.Limit
}

// sweep removes expired records; callers must hold the mutex.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, rec := range rl.records {
		if !now.Before(rec.expiry) {
			delete(rl.records, key)
		}
	}
}
