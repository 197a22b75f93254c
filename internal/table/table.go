// Package table implements the unsynchronized hash table backing a
// memo map.
//
// Entries live in individually allocated nodes that never move once
// inserted. Growing the table relinks the nodes into a larger bucket
// slice without copying them, so a pointer into a node's value stays
// valid across any number of later inserts.
package table

const (
	minBuckets = 8

	// grow when the entry count reaches this multiple of the bucket count.
	loadFactor = 4
)

type node[K comparable, V any] struct {
	hash  uint64
	key   K
	value V
	next  *node[K, V]
}

// T is an insert only chained hash table. It is not safe for concurrent
// use; the caller provides the locking. Bucket counts are always powers
// of two so the hash is reduced by masking.
type T[K comparable, V any] struct {
	hash    func(K) uint64
	buckets []*node[K, V]
	count   int
}

// New constructs an empty table hashing keys with hash.
func New[K comparable, V any](hash func(K) uint64) *T[K, V] {
	return &T[K, V]{hash: hash}
}

// Len returns the number of stored entries.
func (t *T[K, V]) Len() int { return t.count }

// Lookup returns a pointer to the value stored under key, or nil.
func (t *T[K, V]) Lookup(key K) *V {
	if t.count == 0 {
		return nil
	}
	hash := t.hash(key)
	for n := t.buckets[hash&uint64(len(t.buckets)-1)]; n != nil; n = n.next {
		if n.hash == hash && n.key == key {
			return &n.value
		}
	}
	return nil
}

// Insert stores value under key unless the key is already present. It
// returns a pointer to whatever value is stored under key afterward and
// reports whether it did the store.
func (t *T[K, V]) Insert(key K, value V) (*V, bool) {
	hash := t.hash(key)
	if t.count > 0 {
		for n := t.buckets[hash&uint64(len(t.buckets)-1)]; n != nil; n = n.next {
			if n.hash == hash && n.key == key {
				return &n.value, false
			}
		}
	}

	if t.count >= loadFactor*len(t.buckets) {
		t.grow()
	}

	idx := hash & uint64(len(t.buckets)-1)
	n := &node[K, V]{hash: hash, key: key, value: value, next: t.buckets[idx]}
	t.buckets[idx] = n
	t.count++
	return &n.value, true
}

// grow doubles the bucket count and relinks every node. Nodes are
// reused as is, so pointers to their values survive the rehash.
func (t *T[K, V]) grow() {
	size := 2 * len(t.buckets)
	if size < minBuckets {
		size = minBuckets
	}

	buckets := make([]*node[K, V], size)
	mask := uint64(size - 1)
	for _, n := range t.buckets {
		for n != nil {
			next := n.next
			idx := n.hash & mask
			n.next = buckets[idx]
			buckets[idx] = n
			n = next
		}
	}
	t.buckets = buckets
}

// Clone returns a table with the same hash function and fresh copies of
// every entry, sharing no nodes with t.
func (t *T[K, V]) Clone() *T[K, V] {
	c := &T[K, V]{
		hash:    t.hash,
		buckets: make([]*node[K, V], len(t.buckets)),
		count:   t.count,
	}
	for i, n := range t.buckets {
		for ; n != nil; n = n.next {
			c.buckets[i] = &node[K, V]{
				hash:  n.hash,
				key:   n.key,
				value: n.value,
				next:  c.buckets[i],
			}
		}
	}
	return c
}

// Cursor iterates over every entry of a table in unspecified order.
// Inserting while a Cursor is live invalidates it.
type Cursor[K comparable, V any] struct {
	t   *T[K, V]
	idx int
	n   *node[K, V]
}

// Cursor returns a Cursor positioned before the first entry.
func (t *T[K, V]) Cursor() Cursor[K, V] { return Cursor[K, V]{t: t} }

// Next advances to the next entry, reporting false when none remain.
func (c *Cursor[K, V]) Next() bool {
	if c.n != nil {
		c.n = c.n.next
	}
	for c.n == nil {
		if c.idx >= len(c.t.buckets) {
			return false
		}
		c.n = c.t.buckets[c.idx]
		c.idx++
	}
	return true
}

// Key returns the key of the current entry.
func (c *Cursor[K, V]) Key() K { return c.n.key }

// Value returns a pointer to the value of the current entry.
func (c *Cursor[K, V]) Value() *V { return &c.n.value }
