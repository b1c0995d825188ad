// Package ratelimit bounds request volume per client key with a fixed window.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is an in-memory per-key window counter. It is owned by whoever
// constructs it and safe for concurrent use. State lives for the process
// lifetime only: a multi-instance deployment counts per instance, and stale
// keys are never evicted. Both are accepted limitations of this service.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	window time.Duration
	max    int

	now func() time.Time // test seam
}

// New returns a Limiter allowing max requests per window per key.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow reports whether the request identified by key may proceed and
// records it if so. The first request after a window lapse replaces the
// entry with a fresh count of 1.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}
