// Package mru implements a bounded MRU/LRU cache: O(1) get/bump/add/evict
// over a circular doubly-linked list of recency threaded through a flat
// array of slots (not pointer nodes), indexed by a pluggable hash function
// for O(1) key lookup.
package mru

import "github.com/dolthub/maphash"

const nilIdx int32 = -1

type slot[K comparable, V any] struct {
	key        K
	val        V
	prev, next int32 // circular MRU list links; head is most-recently-used
	hashNext   int32 // collision chain link within the bucket it hashes to
	hash       uint64
}

// Cache is a bounded dictionary with most-recently-used/least-recently-used
// eviction. The zero value is not usable; build one with New.
type Cache[K comparable, V any] struct {
	hash       func(K) uint64
	slots      []slot[K, V]
	free       []int32
	buckets    []int32
	bucketMask uint64
	head       int32
	count      int
	capacity   int

	// OnEvicted, if set, is called once for every entry evicted to make
	// room for a new one (never for an explicit Remove).
	OnEvicted func(K, V)
}

// New returns an empty Cache bounded to capacity entries. If hash is nil,
// a dolthub/maphash.Hasher[K] is used.
func New[K comparable, V any](capacity int, hash func(K) uint64) *Cache[K, V] {
	if capacity < 1 {
		capacity = 1
	}

	if hash == nil {
		h := maphash.NewHasher[K]()
		hash = h.Hash
	}

	nb := nextPow2(capacity * 2)
	buckets := make([]int32, nb)
	for i := range buckets {
		buckets[i] = nilIdx
	}

	return &Cache[K, V]{
		hash:       hash,
		slots:      make([]slot[K, V], 0, capacity),
		buckets:    buckets,
		bucketMask: uint64(nb - 1),
		head:       nilIdx,
		capacity:   capacity,
	}
}

func nextPow2(n int) int {
	p := 8
	for p < n {
		p <<= 1
	}

	return p
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int { return c.count }

// Capacity returns the current maximum number of entries.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

func (c *Cache[K, V]) find(k K) (int32, uint64) {
	h := c.hash(k)
	b := h & c.bucketMask

	for i := c.buckets[b]; i != nilIdx; i = c.slots[i].hashNext {
		if c.slots[i].hash == h && c.slots[i].key == k {
			return i, h
		}
	}

	return nilIdx, h
}

func (c *Cache[K, V]) insertIndex(idx int32, h uint64) {
	b := h & c.bucketMask
	c.slots[idx].hashNext = c.buckets[b]
	c.buckets[b] = idx
}

func (c *Cache[K, V]) removeIndex(idx int32, h uint64) {
	b := h & c.bucketMask

	if c.buckets[b] == idx {
		c.buckets[b] = c.slots[idx].hashNext
		return
	}

	for cur := c.buckets[b]; cur != nilIdx; cur = c.slots[cur].hashNext {
		if c.slots[cur].hashNext == idx {
			c.slots[cur].hashNext = c.slots[idx].hashNext
			return
		}
	}
}

// unlink removes idx from the MRU circular list without touching the hash
// index or freeing the slot.
func (c *Cache[K, V]) unlink(idx int32) {
	s := &c.slots[idx]

	if c.count == 1 {
		c.head = nilIdx
		return
	}

	c.slots[s.prev].next = s.next
	c.slots[s.next].prev = s.prev

	if c.head == idx {
		c.head = s.next
	}
}

// pushFront inserts idx at the head of the MRU circular list.
func (c *Cache[K, V]) pushFront(idx int32) {
	if c.head == nilIdx {
		c.slots[idx].next = idx
		c.slots[idx].prev = idx
		c.head = idx

		return
	}

	tail := c.slots[c.head].prev
	c.slots[idx].next = c.head
	c.slots[idx].prev = tail
	c.slots[tail].next = idx
	c.slots[c.head].prev = idx
	c.head = idx
}

func (c *Cache[K, V]) alloc() int32 {
	if l := len(c.free); l > 0 {
		idx := c.free[l-1]
		c.free = c.free[:l-1]

		return idx
	}

	c.slots = append(c.slots, slot[K, V]{})
	return int32(len(c.slots) - 1)
}

// tail returns the current least-recently-used slot index, or nilIdx if
// empty.
func (c *Cache[K, V]) tail() int32 {
	if c.head == nilIdx {
		return nilIdx
	}

	return c.slots[c.head].prev
}

// evictOne evicts the current LRU entry, firing OnEvicted if set.
func (c *Cache[K, V]) evictOne() {
	idx := c.tail()
	if idx == nilIdx {
		return
	}

	k, v := c.slots[idx].key, c.slots[idx].val
	h := c.slots[idx].hash

	c.unlink(idx)
	c.removeIndex(idx, h)
	c.slots[idx] = slot[K, V]{}
	c.free = append(c.free, idx)
	c.count--

	if c.OnEvicted != nil {
		c.OnEvicted(k, v)
	}
}

// Add inserts or overwrites k with v and bumps it to most-recently-used,
// evicting the current least-recently-used entry first if the cache is at
// capacity.
func (c *Cache[K, V]) Add(k K, v V) {
	if idx, _ := c.find(k); idx != nilIdx {
		c.slots[idx].val = v
		c.unlink(idx)
		c.pushFront(idx)

		return
	}

	if c.count >= c.capacity {
		c.evictOne()
	}

	idx := c.alloc()
	h := c.hash(k)
	c.slots[idx].key = k
	c.slots[idx].val = v
	c.slots[idx].hash = h
	c.insertIndex(idx, h)
	c.pushFront(idx)
	c.count++
}

// TryAdd inserts k only if it is not already present, reporting whether it
// did so. An existing entry is left untouched (not bumped).
func (c *Cache[K, V]) TryAdd(k K, v V) bool {
	if idx, _ := c.find(k); idx != nilIdx {
		return false
	}

	c.Add(k, v)
	return true
}

// TryGet returns the value for k and bumps it to most-recently-used.
func (c *Cache[K, V]) TryGet(k K) (V, bool) {
	idx, _ := c.find(k)
	if idx == nilIdx {
		var zero V
		return zero, false
	}

	c.unlink(idx)
	c.pushFront(idx)

	return c.slots[idx].val, true
}

// Bump moves k to most-recently-used without returning its value,
// reporting whether it was present.
func (c *Cache[K, V]) Bump(k K) bool {
	idx, _ := c.find(k)
	if idx == nilIdx {
		return false
	}

	c.unlink(idx)
	c.pushFront(idx)

	return true
}

// Remove deletes k, reporting whether it was present. OnEvicted is not
// called for an explicit Remove.
func (c *Cache[K, V]) Remove(k K) bool {
	idx, h := c.find(k)
	if idx == nilIdx {
		return false
	}

	c.unlink(idx)
	c.removeIndex(idx, h)
	c.slots[idx] = slot[K, V]{}
	c.free = append(c.free, idx)
	c.count--

	return true
}

// SetCapacity changes the maximum number of entries, evicting from the
// least-recently-used end until the new capacity is met if it shrinks.
func (c *Cache[K, V]) SetCapacity(n int) {
	if n < 1 {
		n = 1
	}

	c.capacity = n
	for c.count > c.capacity {
		c.evictOne()
	}
}

// MostRecentlyUsed returns the current head of the recency list.
func (c *Cache[K, V]) MostRecentlyUsed() (K, V, bool) {
	if c.head == nilIdx {
		var zk K
		var zv V
		return zk, zv, false
	}

	s := c.slots[c.head]
	return s.key, s.val, true
}

// LeastRecentlyUsed returns the current tail of the recency list.
func (c *Cache[K, V]) LeastRecentlyUsed() (K, V, bool) {
	idx := c.tail()
	if idx == nilIdx {
		var zk K
		var zv V
		return zk, zv, false
	}

	s := c.slots[idx]
	return s.key, s.val, true
}

// Keys yields every key from most- to least-recently-used.
func (c *Cache[K, V]) Keys() func(func(K) bool) {
	return func(yield func(K) bool) {
		if c.head == nilIdx {
			return
		}

		idx := c.head
		for i := 0; i < c.count; i++ {
			if !yield(c.slots[idx].key) {
				return
			}
			idx = c.slots[idx].next
		}
	}
}
