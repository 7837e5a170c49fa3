package solver

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
)

// DefaultMaxCacheEntries bounds an unconfigured Cache.
const DefaultMaxCacheEntries = 1024

// Cache memoizes Solve results keyed by a digest of the full instance.
// It is safe for concurrent use. Entries hold copies of their inputs, so
// digest collisions are detected rather than served.
type Cache struct {
	mu         sync.RWMutex
	entries    map[uint64]cacheEntry
	maxEntries int
}

type cacheEntry struct {
	weights   []int32
	values    []int32
	capacity  int32
	total     int32
	selection []int32
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMaxEntries sets the maximum number of cached results. When the
// cache is full, inserting a new instance evicts an arbitrary entry.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// NewCache creates an empty solve cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries:    make(map[uint64]cacheEntry),
		maxEntries: DefaultMaxCacheEntries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Solve answers from the cache when the identical instance was solved
// before, and delegates to Solve otherwise. The selection buffer contract
// matches Solve: fully overwritten on success, untouched on error.
func (c *Cache) Solve(weights, values []int32, capacity int32, selection []int32) (int32, error) {
	if len(values) != len(weights) || len(selection) != len(weights) {
		return Solve(weights, values, capacity, selection)
	}
	key := instanceDigest(weights, values, capacity)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && e.matches(weights, values, capacity) && len(selection) == len(e.selection) {
		copy(selection, e.selection)
		return e.total, nil
	}

	total, err := Solve(weights, values, capacity, selection)
	if err != nil {
		return 0, err
	}

	e = cacheEntry{
		weights:   append([]int32(nil), weights...),
		values:    append([]int32(nil), values...),
		capacity:  capacity,
		total:     total,
		selection: append([]int32(nil), selection...),
	}

	c.mu.Lock()
	if len(c.entries) >= c.maxEntries {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = e
	c.mu.Unlock()

	return total, nil
}

// Len reports the number of cached instances.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (e cacheEntry) matches(weights, values []int32, capacity int32) bool {
	if e.capacity != capacity || len(e.weights) != len(weights) {
		return false
	}
	for i := range weights {
		if e.weights[i] != weights[i] || e.values[i] != values[i] {
			return false
		}
	}
	return true
}

func instanceDigest(weights, values []int32, capacity int32) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(capacity))
	h.Write(buf[:])
	for i := range weights {
		binary.LittleEndian.PutUint32(buf[:], uint32(weights[i]))
		h.Write(buf[:])
		binary.LittleEndian.PutUint32(buf[:], uint32(values[i]))
		h.Write(buf[:])
	}
	return h.Sum64()
}
