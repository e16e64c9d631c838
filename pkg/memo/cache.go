package memo

import "sync"

type entry[V any] struct {
	once  sync.Once
	value V
	err   error
}

// Cache memoizes the result of a computation per key.
// The zero value is ready to use and safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[V]
}

// Get returns the cached result for key, running compute on first use.
// Concurrent first calls for the same key block until the single
// computation finishes. The lock is not held while compute runs, so compute
// may itself call Get for other keys.
func (c *Cache[K, V]) Get(key K, compute func() (V, error)) (V, error) {
	e := c.lookup(key)
	e.once.Do(func() {
		e.value, e.err = compute()
	})
	return e.value, e.err
}

// Delete drops the entry for key so the next Get recomputes it.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Reset drops every entry.
func (c *Cache[K, V]) Reset() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}

// Len returns the number of keys currently cached, including failed ones.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[K, V]) lookup(key K) *entry[V] {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok = c.entries[key]; ok {
		return e
	}
	if c.entries == nil {
		c.entries = make(map[K]*entry[V])
	}
	e = &entry[V]{}
	c.entries[key] = e
	return e
}
