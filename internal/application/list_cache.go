package application

import (
	"sync"
	"time"

	"github.com/madson-lima/totalfilter-backend/internal/domain"
)

// ListCache is a small TTL cache for the carousel listing. The homepage polls
// the list far more often than it changes; mutations invalidate the cache so
// readers never see a stale order.
//
// Fills are guarded by a generation counter: a reader captures the generation
// before querying the store and hands it back to Set, which discards the fill
// if any invalidation happened in between. Without that, a mutation committing
// during the store read could be masked by the stale snapshot for a full TTL.
type ListCache struct {
	mu      sync.RWMutex
	items   []domain.CarouselItem
	valid   bool
	fetched time.Time
	ttl     time.Duration
	gen     uint64
}

func NewListCache(ttl time.Duration) *ListCache {
	return &ListCache{ttl: ttl}
}

// Get returns the cached listing if it is still fresh.
func (c *ListCache) Get() ([]domain.CarouselItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || time.Since(c.fetched) > c.ttl {
		return nil, false
	}

	items := make([]domain.CarouselItem, len(c.items))
	copy(items, c.items)
	return items, true
}

// Generation returns the current invalidation generation. Capture it before
// reading the store and pass it to Set.
func (c *ListCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Set stores a fresh listing, unless the cache was invalidated after gen was
// captured.
func (c *ListCache) Set(items []domain.CarouselItem, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}

	c.items = make([]domain.CarouselItem, len(items))
	copy(c.items, items)
	c.valid = true
	c.fetched = time.Now()
}

// Invalidate drops the cached listing and bumps the generation so in-flight
// fills holding an older snapshot are discarded. Called after every mutation.
func (c *ListCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.valid = false
	c.gen++
}
