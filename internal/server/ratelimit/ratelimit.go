// Package ratelimit provides a per-client token bucket rate limiter for the
// HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// Info describes the rate limit state returned with each decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is a token bucket refilled continuously at refillRate tokens/second.
type bucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) take() (allowed bool, remaining int, resetTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > float64(b.capacity) {
		b.tokens = float64(b.capacity)
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	resetTime = now
	if b.tokens < float64(b.capacity) {
		deficit := float64(b.capacity) - b.tokens
		resetTime = now.Add(time.Duration(deficit / b.refillRate * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Limiter rate-limits clients identified by an opaque key (typically the
// remote IP). Idle buckets are dropped by a background sweep.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time

	limit  int
	window time.Duration

	sweepTicker *time.Ticker
	sweepStop   chan struct{}
}

// NewLimiter allows limit requests per window per client, with burst capacity
// equal to the limit.
func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		limit:      limit,
		window:     window,
	}

	l.sweepTicker = time.NewTicker(5 * time.Minute)
	l.sweepStop = make(chan struct{})
	go l.sweep()

	return l
}

// Allow reports whether a request from the client may proceed.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if l.limit <= 0 {
		return true, Info{Allowed: true}
	}

	l.mu.Lock()
	b, ok := l.buckets[clientID]
	if !ok {
		b = newBucket(l.limit, float64(l.limit)/l.window.Seconds())
		l.buckets[clientID] = b
	}
	l.lastAccess[clientID] = time.Now()
	l.mu.Unlock()

	allowed, remaining, resetTime := b.take()

	info := Info{
		Allowed:   allowed,
		Limit:     l.limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		if retry := time.Until(resetTime); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

// Stop halts the background sweep.
func (l *Limiter) Stop() {
	if l.sweepTicker != nil {
		l.sweepTicker.Stop()
	}
	if l.sweepStop != nil {
		close(l.sweepStop)
	}
}

func (l *Limiter) sweep() {
	for {
		select {
		case <-l.sweepTicker.C:
			l.dropIdle(time.Now().Add(-time.Hour))
		case <-l.sweepStop:
			return
		}
	}
}

func (l *Limiter) dropIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}
