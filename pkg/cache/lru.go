// Package cache provides a TTL and max-size bounded response cache for the
// JSON API. Entries are tagged with the dashboard section they were read
// from so a status change drops exactly the affected responses.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Entry is a cached response body and its content type.
type Entry struct {
	Body        []byte
	ContentType string
}

type item struct {
	key       string
	tag       string
	entry     Entry
	expiresAt time.Time
}

// LRUCache is a thread-safe in-memory cache with TTL and max-size eviction.
// At capacity the least recently used entry is evicted. Expired entries are
// dropped lazily on Get.
type LRUCache struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	byKey   map[string]*list.Element
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	// gens counts invalidations per tag; epoch counts InvalidateAll calls.
	gens  map[string]uint64
	epoch uint64
}

// NewLRUCache creates a cache holding at most maxSize entries for ttl each.
// maxSize below 1 becomes 1; a non-positive ttl becomes 30s.
func NewLRUCache(maxSize int, ttl time.Duration) *LRUCache {
	c := &LRUCache{
		maxSize: max(maxSize, 1),
		ttl:     ttl,
		now:     time.Now,
		gens:    make(map[string]uint64),
	}
	if c.ttl <= 0 {
		c.ttl = 30 * time.Second
	}
	c.reset()
	return c
}

func (c *LRUCache) reset() {
	c.order = list.New()
	c.byKey = make(map[string]*list.Element, c.maxSize)
}

// Get returns the live entry stored under key and marks it recently used.
func (c *LRUCache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	if !ok {
		return Entry{}, false
	}
	it := el.Value.(*item)
	if c.now().After(it.expiresAt) {
		c.remove(el)
		return Entry{}, false
	}
	c.order.MoveToFront(el)
	return it.entry, true
}

// Set stores e under key with the given tag, replacing any previous entry.
func (c *LRUCache) Set(key, tag string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, tag, e)
}

// Generation returns a counter that changes whenever entries tagged with tag
// are invalidated.
func (c *LRUCache) Generation(tag string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch + c.gens[tag]
}

// SetIfGeneration stores e like Set, unless tag was invalidated after gen was
// read from Generation. It reports whether e was stored.
func (c *LRUCache) SetIfGeneration(key, tag string, e Entry, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch+c.gens[tag] != gen {
		return false
	}
	c.set(key, tag, e)
	return true
}

// set must be called with c.mu held.
func (c *LRUCache) set(key, tag string, e Entry) {
	expires := c.now().Add(c.ttl)
	if el, ok := c.byKey[key]; ok {
		it := el.Value.(*item)
		it.tag, it.entry, it.expiresAt = tag, e, expires
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
	}
	c.byKey[key] = c.order.PushFront(&item{key: key, tag: tag, entry: e, expiresAt: expires})
}

// Invalidate removes key.
func (c *LRUCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.byKey[key]; ok {
		c.remove(el)
	}
}

// InvalidateTag removes every entry stored with tag and returns how many
// were removed.
func (c *LRUCache) InvalidateTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[tag]++
	n := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*item).tag == tag {
			c.remove(el)
			n++
		}
		el = next
	}
	return n
}

// InvalidateAll empties the cache.
func (c *LRUCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.reset()
}

// Size returns the number of stored entries, expired ones included.
func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// remove must be called with c.mu held.
func (c *LRUCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.byKey, el.Value.(*item).key)
}
