// Package lru provides a fixed-capacity key-value cache that evicts in
// insertion order and promotes entries on read.
package lru

import (
	"container/list"
	"sync"
)

// Cache of at most capacity entries, ordered from least to most recently touched.
// An entry is touched when it is set or read with Get; Peek leaves the order alone.
// Cache is concurrency safe.
type Cache[K comparable, V any] struct {
	// capacity maximum number of entries held at once
	capacity int

	// order of entries, head is the least recently touched
	order *list.List

	// index maps keys to their element in order
	index map[K]*list.Element

	// lock guards order and index for the whole of each operation
	lock sync.Mutex
}

// entry is the value stored in each list element
type entry[K comparable, V any] struct {
	key   K
	value V
}

// New constructs a Cache holding at most capacity entries.
// capacity is expected to be at least 1; smaller values are treated as 1.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[K, V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity),
	}
}

// Peek returns the value for key without changing its eviction priority.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*entry[K, V]).value, true
}

// Get returns the value for key and, if present, moves it to the most recently used position.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToBack(el)
	return el.Value.(*entry[K, V]).value, true
}

// Set stores value under key at the most recently used position.
// An existing entry for key is dropped first. If the cache is then full the
// least recently used entry is evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.index[key]; ok {
		c.order.Remove(el)
		delete(c.index, key)
	}

	if c.order.Len() >= c.capacity {
		head := c.order.Front()
		c.order.Remove(head)
		delete(c.index, head.Value.(*entry[K, V]).key)
	}

	c.index[key] = c.order.PushBack(&entry[K, V]{key: key, value: value})
}

// Len returns the number of entries currently held.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.order.Len()
}

// Keys returns the held keys from least to most recently touched.
func (c *Cache[K, V]) Keys() []K {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}
