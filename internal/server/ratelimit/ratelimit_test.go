package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	l := NewLimiter(5, time.Minute)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("client-a")
		assert.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 5, info.Limit)
	}
}

func TestLimiter_BlocksOverLimit(t *testing.T) {
	l := NewLimiter(2, time.Hour)
	defer l.Stop()

	l.Allow("client-a")
	l.Allow("client-a")
	allowed, info := l.Allow("client-a")

	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Hour)
	defer l.Stop()

	l.Allow("client-a")
	allowedA, _ := l.Allow("client-a")
	allowedB, _ := l.Allow("client-b")

	assert.False(t, allowedA)
	assert.True(t, allowedB)
}

func TestLimiter_ZeroLimitDisables(t *testing.T) {
	l := NewLimiter(0, time.Minute)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("client-a")
		assert.True(t, allowed)
	}
}

func TestLimiter_DropIdle(t *testing.T) {
	l := NewLimiter(1, time.Hour)
	defer l.Stop()

	l.Allow("client-a")
	l.dropIdle(time.Now().Add(time.Second))

	// Bucket was dropped, so the client starts fresh.
	allowed, _ := l.Allow("client-a")
	assert.True(t, allowed)
}
