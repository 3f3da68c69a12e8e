// Package intlru exposes an LRU cache with the classic integer contract:
// Get returns Miss instead of a second result when the key is absent.
package intlru

import (
	"golang.org/x/exp/constraints"

	"gitlab.com/slon/lrucache/lrucache"
)

// Miss is what Get returns for an absent key.
const Miss = -1

// Cache maps keys to signed integer values.
//
// A stored value equal to Miss cannot be told apart from a miss through Get.
// Use Lookup when that matters.
type Cache[K comparable, V constraints.Signed] struct {
	lru *lrucache.LRUCache[K, V]
}

// New returns a cache holding at most capacity entries.
func New[K comparable, V constraints.Signed](capacity int) (*Cache[K, V], error) {
	lru, err := lrucache.New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{lru: lru}, nil
}

// Get returns the value for key, or Miss. A hit makes key the most recently used.
func (c *Cache[K, V]) Get(key K) V {
	if v, ok := c.lru.Get(key); ok {
		return v
	}
	return Miss
}

// Lookup is Get with an explicit presence flag.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[K, V]) Put(key K, value V) {
	c.lru.Put(key, value)
}

// Contains reports presence without counting as an access.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.lru.Contains(key)
}

func (c *Cache[K, V]) Size() int {
	return c.lru.Len()
}
