// Package ratelimit enforces a per-client-IP sliding-window request limit at
// connection admission.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request timestamps per client IP over a rolling window.
// The timestamp map is the only cross-connection mutable state besides the
// session registry; access is serialized by the mutex.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

// New creates a limiter allowing max requests per client within window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// WithClock overrides the time source. Tests use this to step the window.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow records one request for client and reports whether it is within the
// limit. Requests older than the window are pruned and excluded from the
// count. At most once per window it also sweeps clients whose every request
// has expired, so the map stays bounded when clients never return.
func (l *Limiter) Allow(client string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	kept := l.hits[client][:0]
	for _, ts := range l.hits[client] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.max {
		l.hits[client] = kept
		return false
	}

	l.hits[client] = append(kept, now)
	return true
}

// sweep drops clients whose newest request predates the cutoff. Caller holds
// the mutex.
func (l *Limiter) sweep(cutoff time.Time) {
	for client, ts := range l.hits {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(l.hits, client)
		}
	}
}
