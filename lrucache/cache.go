// Package lrucache implements a fixed-capacity least-recently-used cache.
//
// LRUCache is the plain, single-goroutine structure. SyncCache guards it with
// one mutex for callers that share a cache between goroutines.
package lrucache

import "errors"

// ErrInvalidCapacity is returned by constructors when capacity is less than one.
var ErrInvalidCapacity = errors.New("lrucache: capacity must be at least 1")

// EvictCallback is called with the entry that was pushed out by Put.
type EvictCallback[K comparable, V any] func(key K, value V)

// Cache is the surface shared by LRUCache and SyncCache.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and marks it as most recently used.
	Get(key K) (V, bool)

	// Put inserts or overwrites key and marks it as most recently used.
	// When a new key does not fit, the least recently used entry is evicted.
	Put(key K, value V)

	// Contains reports whether key is resident. It does not touch recency.
	Contains(key K) bool

	// Peek returns the value for key without touching recency.
	Peek(key K) (V, bool)

	// Remove deletes key and reports whether it was present.
	Remove(key K) bool

	// Len returns the number of resident entries.
	Len() int

	// Cap returns the capacity the cache was built with.
	Cap() int

	// Keys returns resident keys from most to least recently used.
	Keys() []K

	// Range calls f for every entry from most to least recently used
	// until f returns false.
	Range(f func(key K, value V) bool)

	// Clear drops every entry.
	Clear()
}
