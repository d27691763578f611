package lru

import (
	"github.com/ardnew/mfmt/list"
)

// DefaultCapacity is the capacity used when none is given.
const DefaultCapacity = 2048

type entry[V any] struct {
	key   string
	value V
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	Capacity  int
}

// Cache is a fixed-capacity LRU cache from string keys to values of type V.
type Cache[V any] struct {
	capacity int
	items    map[string]*list.Node[entry[V]]
	recency  list.List[entry[V]]
	onEvict  func(key string, value V)

	hits, misses, evictions uint64
}

// Option configures a [Cache].
type Option[V any] func(*Cache[V])

// WithEvict registers fn to be called with each entry evicted by [Cache.Put]
// to make room. It is not called for [Cache.Remove] or [Cache.Clear].
func WithEvict[V any](fn func(key string, value V)) Option[V] {
	return func(c *Cache[V]) { c.onEvict = fn }
}

// New returns an empty cache holding at most capacity entries.
// New panics if capacity is less than 1.
func New[V any](capacity int, opts ...Option[V]) *Cache[V] {
	if capacity < 1 {
		panic("lru: capacity must be at least 1")
	}

	c := &Cache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Node[entry[V]]),
	}

	c.recency.Init()

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the value stored for key and marks it most recently used.
// The boolean is false on a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	node, ok := c.items[key]
	if !ok {
		c.misses++

		var zero V

		return zero, false
	}

	c.hits++
	c.recency.MoveToFront(node)

	return node.Value.value, true
}

// Peek returns the value stored for key without touching recency or stats.
func (c *Cache[V]) Peek(key string) (V, bool) {
	if node, ok := c.items[key]; ok {
		return node.Value.value, true
	}

	var zero V

	return zero, false
}

// Contains reports whether key is cached without touching recency or stats.
func (c *Cache[V]) Contains(key string) bool {
	_, ok := c.items[key]

	return ok
}

// Put stores value for key and marks it most recently used.
//
// Inserting a new key into a full cache evicts exactly one entry, the least
// recently used. Since each call adds at most one entry, a single eviction
// keeps the size within capacity.
func (c *Cache[V]) Put(key string, value V) {
	if node, ok := c.items[key]; ok {
		node.Value.value = value
		c.recency.MoveToFront(node)

		return
	}

	node := &list.Node[entry[V]]{Value: entry[V]{key: key, value: value}}
	c.items[key] = node
	c.recency.PushFront(node)

	if len(c.items) > c.capacity {
		c.evict()
	}
}

func (c *Cache[V]) evict() {
	oldest := c.recency.Back()
	if oldest == nil {
		return
	}

	list.Remove(oldest)
	delete(c.items, oldest.Value.key)
	c.evictions++

	if c.onEvict != nil {
		c.onEvict(oldest.Value.key, oldest.Value.value)
	}
}

// Remove deletes key and reports whether it was present.
func (c *Cache[V]) Remove(key string) bool {
	node, ok := c.items[key]
	if !ok {
		return false
	}

	list.Remove(node)
	delete(c.items, key)

	return true
}

// Clear drops every entry and resets the counters, leaving c in the same
// state as a freshly created cache of the same capacity.
func (c *Cache[V]) Clear() {
	c.items = make(map[string]*list.Node[entry[V]])
	c.recency.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int { return len(c.items) }

// Cap returns the capacity fixed at construction.
func (c *Cache[V]) Cap() int { return c.capacity }

// Keys returns the cached keys ordered from most to least recently used.
func (c *Cache[V]) Keys() []string {
	keys := make([]string, 0, len(c.items))
	for node := range c.recency.All() {
		keys = append(keys, node.Value.key)
	}

	return keys
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Wrap returns a memoized version of fn.
//
// The returned function serves key from the cache when present. Otherwise it
// calls fn and, only if fn succeeds, stores the result before returning it.
// Errors are passed through and never cached, so a failing key is recomputed
// on every call. Zero values are cached like any other result.
//
// fn must be a deterministic function of its argument without side effects
// the caller relies on; memoization is unsound otherwise.
func (c *Cache[V]) Wrap(fn func(string) (V, error)) func(string) (V, error) {
	return func(key string) (V, error) {
		if value, ok := c.Get(key); ok {
			return value, nil
		}

		value, err := fn(key)
		if err != nil {
			return value, err
		}

		c.Put(key, value)

		return value, nil
	}
}
