package cache

import "net/http"

// TagStats marks responses derived from every section, such as /stats.
const TagStats = "stats"

// Manager owns the API response cache and its per-section invalidation.
// A nil *Manager is valid and caches nothing.
type Manager struct {
	lru *LRUCache
}

// NewManager creates a Manager from cfg. It returns nil when caching is
// disabled.
func NewManager(cfg Config) *Manager {
	if !cfg.Enabled {
		return nil
	}
	return &Manager{lru: NewLRUCache(cfg.MaxSize, cfg.TTL)}
}

// Section returns middleware caching responses of one section.
func (m *Manager) Section(section string) func(http.Handler) http.Handler {
	if m == nil {
		return passthrough
	}
	return Middleware(m.lru, section)
}

// InvalidateSection drops the section's responses and every aggregate.
func (m *Manager) InvalidateSection(section string) int {
	if m == nil {
		return 0
	}
	return m.lru.InvalidateTag(section) + m.lru.InvalidateTag(TagStats)
}

// InvalidateAll empties the cache.
func (m *Manager) InvalidateAll() {
	if m == nil {
		return
	}
	m.lru.InvalidateAll()
}

// Size returns the number of cached responses.
func (m *Manager) Size() int {
	if m == nil {
		return 0
	}
	return m.lru.Size()
}

func passthrough(next http.Handler) http.Handler { return next }
