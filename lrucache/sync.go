package lrucache

import "sync"

// SyncCache is an LRUCache guarded by a single mutex.
//
// Every method holds the lock for its whole duration. A read lock would not do:
// Get reorders the recency list.
type SyncCache[K comparable, V any] struct {
	mu  sync.Mutex
	lru *LRUCache[K, V]
}

var _ Cache[string, int] = (*SyncCache[string, int])(nil)

// NewSync creates a goroutine-safe LRU cache.
func NewSync[K comparable, V any](capacity int) (*SyncCache[K, V], error) {
	return NewSyncWithEvict[K, V](capacity, nil)
}

// NewSyncWithEvict is like NewSync with an eviction callback.
// The callback runs while the lock is held and must not call back into the cache.
func NewSyncWithEvict[K comparable, V any](capacity int, onEvict EvictCallback[K, V]) (*SyncCache[K, V], error) {
	lru, err := NewWithEvict(capacity, onEvict)
	if err != nil {
		return nil, err
	}
	return &SyncCache[K, V]{lru: lru}, nil
}

func (s *SyncCache[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Get(key)
}

func (s *SyncCache[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Put(key, value)
}

func (s *SyncCache[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Contains(key)
}

func (s *SyncCache[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Peek(key)
}

func (s *SyncCache[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Remove(key)
}

func (s *SyncCache[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Cap does not need the lock: capacity never changes after construction.
func (s *SyncCache[K, V]) Cap() int {
	return s.lru.Cap()
}

func (s *SyncCache[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Keys()
}

// Range holds the lock while f runs, so f must not call back into the cache.
func (s *SyncCache[K, V]) Range(f func(key K, value V) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Range(f)
}

func (s *SyncCache[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Clear()
}
