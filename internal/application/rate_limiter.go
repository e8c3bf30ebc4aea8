package application

import (
	"sync"
	"time"
)

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a fixed-window request limiter keyed by an arbitrary
// identifier, typically the client IP.
type RateLimiter struct {
	entries map[string]*rateLimitEntry
	mu      sync.Mutex
	window  time.Duration
	limit   int
}

func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		entries: make(map[string]*rateLimitEntry),
		window:  window,
		limit:   limit,
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request for identifier fits in the current window.
// When the limit is exceeded it also returns how long until the window
// resets.
func (rl *RateLimiter) Allow(identifier string) (bool, time.Duration) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.entries[identifier]
	if !exists || now.After(entry.resetTime) {
		rl.entries[identifier] = &rateLimitEntry{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true, 0
	}

	if entry.count >= rl.limit {
		return false, entry.resetTime.Sub(now)
	}

	entry.count++
	return true, 0
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for id, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, id)
		}
	}
}
