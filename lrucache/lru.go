package lrucache

import "fmt"

// LRUCache is a strict LRU cache. It is not safe for concurrent use, see SyncCache.
type LRUCache[K comparable, V any] struct {
	capacity int
	index    map[K]int // ключ -> слот в арене
	list     recencyList[K, V]
	onEvict  EvictCallback[K, V]
}

var _ Cache[string, int] = (*LRUCache[string, int])(nil)

// New creates an LRU cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*LRUCache[K, V], error) {
	return NewWithEvict[K, V](capacity, nil)
}

// NewWithEvict is like New, but onEvict is called for every entry evicted by Put.
// Remove, Clear and overwrites do not trigger it.
func NewWithEvict[K comparable, V any](capacity int, onEvict EvictCallback[K, V]) (*LRUCache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	return &LRUCache[K, V]{
		capacity: capacity,
		index:    make(map[K]int, capacity),
		list:     newRecencyList[K, V](capacity),
		onEvict:  onEvict,
	}, nil
}

// Get returns the value for key and makes it the most recently used entry.
func (l *LRUCache[K, V]) Get(key K) (V, bool) {
	i, ok := l.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	l.list.moveToFront(i)
	return l.list.slots[i].value, true
}

// Put inserts or updates key. Updating counts as an access.
func (l *LRUCache[K, V]) Put(key K, value V) {
	if i, ok := l.index[key]; ok {
		l.list.slots[i].value = value
		l.list.moveToFront(i)
		return
	}

	// Сначала освобождаем место, затем вставляем: арена не растёт дальше capacity.
	if l.list.len >= l.capacity {
		l.evictOldest()
	}

	l.index[key] = l.list.pushFront(key, value)
}

// Contains reports whether key is resident without changing recency order.
func (l *LRUCache[K, V]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Peek returns the value for key without changing recency order.
func (l *LRUCache[K, V]) Peek(key K) (V, bool) {
	i, ok := l.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return l.list.slots[i].value, true
}

// Remove deletes key from the cache.
func (l *LRUCache[K, V]) Remove(key K) bool {
	i, ok := l.index[key]
	if !ok {
		return false
	}

	delete(l.index, key)
	l.list.remove(i)
	return true
}

func (l *LRUCache[K, V]) Len() int {
	return l.list.len
}

func (l *LRUCache[K, V]) Cap() int {
	return l.capacity
}

// Keys returns a snapshot of resident keys, most recently used first.
func (l *LRUCache[K, V]) Keys() []K {
	keys := make([]K, 0, l.list.len)
	l.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range walks entries from most to least recently used. f must not modify the cache.
func (l *LRUCache[K, V]) Range(f func(key K, value V) bool) {
	for i := l.list.head; i != null; i = l.list.slots[i].next {
		e := &l.list.slots[i]
		if !f(e.key, e.value) {
			return
		}
	}
}

// Clear removes all entries. Capacity is kept.
func (l *LRUCache[K, V]) Clear() {
	clear(l.index)
	l.list.reset()
}

func (l *LRUCache[K, V]) evictOldest() {
	key, value := l.list.remove(l.list.tail)
	delete(l.index, key)

	if l.onEvict != nil {
		l.onEvict(key, value)
	}
}
