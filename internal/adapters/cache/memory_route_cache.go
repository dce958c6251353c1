package cache

import (
	"container/list"
	"context"
	"fuel-route-service/internal/ports"
	"log"
	"sync"
	"time"
)

// DefaultMemoryRouteEntries caps the in-process route cache.
const DefaultMemoryRouteEntries = 1000

type memoryRouteEntry struct {
	key     string
	route   ports.RouteResult
	expires time.Time
}

// MemoryRouteCache is a process-local route cache used when no Redis URL is
// configured. It holds at most maxEntries routes, evicting the least
// recently used; expired entries are dropped on read and by Sweep.
type MemoryRouteCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front is most recently used
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryRouteCache returns an empty cache. maxEntries <= 0 selects
// DefaultMemoryRouteEntries.
func NewMemoryRouteCache(ttl time.Duration, maxEntries int) *MemoryRouteCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryRouteEntries
	}
	return &MemoryRouteCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryRouteCache) Get(_ context.Context, key string) (ports.RouteResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return ports.RouteResult{}, false, nil
	}

	e := el.Value.(*memoryRouteEntry)
	if c.expired(e, c.now()) {
		c.remove(el)
		return ports.RouteResult{}, false, nil
	}

	c.order.MoveToFront(el)
	return e.route, true, nil
}

func (c *MemoryRouteCache) Put(_ context.Context, key string, route ports.RouteResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*memoryRouteEntry)
		e.route, e.expires = route, expires
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[key] = c.order.PushFront(&memoryRouteEntry{key: key, route: route, expires: expires})
	for c.order.Len() > c.maxEntries {
		c.remove(c.order.Back())
	}
	return nil
}

func (c *MemoryRouteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Sweep removes every expired entry and reports how many were removed.
func (c *MemoryRouteCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*memoryRouteEntry), now) {
			c.remove(el)
			removed++
		}
		el = prev
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (c *MemoryRouteCache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := c.Sweep(); n > 0 {
					log.Printf("op=route_cache.sweep removed=%d", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *MemoryRouteCache) expired(e *memoryRouteEntry, now time.Time) bool {
	return c.ttl > 0 && now.After(e.expires)
}

func (c *MemoryRouteCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*memoryRouteEntry).key)
}
