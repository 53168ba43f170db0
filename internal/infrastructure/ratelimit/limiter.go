package ratelimit

import (
	"sync"
	"time"
)

// Limiter is an in-memory sliding-window rate limiter keyed by caller.
// Debates are expensive, so the check runs once before a debate starts,
// never inside the round loop. State is per-process; horizontally
// scaled deployments get a per-instance allowance.
type Limiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	now       func() time.Time
	lastSweep time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records an attempt for the key and reports whether it is within
// the window's allowance. A non-positive limit disables limiting.
func (l *Limiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	// once per window, drop keys that went fully quiet so idle users
	// do not pin their timestamp slices forever
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	kept := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.hits[key] = kept
		return false
	}

	l.hits[key] = append(kept, now)
	return true
}

// sweep removes keys whose newest hit already left the window. Hits
// are appended in time order, so checking the last entry is enough.
// Callers hold the mutex.
func (l *Limiter) sweep(cutoff time.Time) {
	for key, times := range l.hits {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(l.hits, key)
		}
	}
}

// Remaining reports how many attempts the key has left in the current
// window.
func (l *Limiter) Remaining(key string) int {
	if l.limit <= 0 {
		return l.limit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	count := 0
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			count++
		}
	}
	if count >= l.limit {
		return 0
	}
	return l.limit - count
}
