package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key (usually a client address). Each
// bucket allows maxHits requests per window, refilled continuously.
//
// A bucket idle for a whole window is full again, so it is dropped on the next
// sweep; the map holds at most the keys seen in the last two windows.
type Limiter struct {
	mu        sync.Mutex
	limiters  map[string]*bucket
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	if maxHits < 1 {
		maxHits = 1
	}
	return &Limiter{
		limiters:  make(map[string]*bucket),
		limit:     rate.Every(window / time.Duration(maxHits)),
		burst:     maxHits,
		window:    window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}

	b, ok := l.limiters[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Len reports how many keys currently hold a bucket.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *Limiter) sweep(now time.Time) {
	for key, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.window {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}
