// Package memomap provides an insert only, thread safe hash map for
// memoizing values.
//
// A Map differs from an ordinary map in three ways: it is synchronized,
// a value stored under a key can never be replaced or removed, and
// lookups return plain pointers into the Map's own storage. Together
// these let code lazily compute a value once and hand out the same
// stable pointer to every caller afterward, even from APIs constrained
// to returning references.
//
// Because the Map is guarded by a single mutex that is also held while
// iterating, using a Map from inside its own iteration or creator
// callbacks on the same goroutine deadlocks. See Iterator for details.
package memomap

import (
	"sync"

	"github.com/zeebo/memomap/internal/table"
)

// Map is an insert only, thread safe hash map from K to V.
//
// Once a value is stored under a key it is never moved, replaced, or
// removed, so pointers handed out by Get, GetOrInsert and friends stay
// valid for as long as the Map itself, no matter how much the Map grows
// afterward.
//
// All operations serialize on one mutex. In particular, creator
// functions run while that mutex is held, which guarantees at most one
// creator invocation per key at the price of blocking every other
// operation on the Map, even for unrelated keys, until the creator
// returns. Keep creators cheap and never call back into the same Map
// from one.
//
// The zero value is an empty Map ready for use.
type Map[K comparable, V any] struct {
	mu   sync.Mutex
	hash Hasher[K]
	tab  *table.T[K, V]
}

// New constructs an empty Map using a freshly seeded default hash.
func New[K comparable, V any]() *Map[K, V] { return new(Map[K, V]) }

// NewHasher constructs an empty Map that hashes keys with h.
func NewHasher[K comparable, V any](h Hasher[K]) *Map[K, V] {
	return &Map[K, V]{hash: h}
}

// lockTable acquires the mutex and returns the table, allocating it on
// first use. The caller is responsible for unlocking.
func (m *Map[K, V]) lockTable() *table.T[K, V] {
	m.mu.Lock()
	if m.tab == nil {
		h := m.hash
		if h == nil {
			h = defaultHasher[K]()
		}
		m.tab = table.New[K, V](h)
	}
	return m.tab
}

// Insert stores value under key if no value is stored there yet. It
// reports true if it stored the value, and false if the key was already
// present, in which case value is discarded and the stored value is
// left untouched. Prefer GetOrInsert or GetOrTryInsert.
func (m *Map[K, V]) Insert(key K, value V) bool {
	tab := m.lockTable()
	defer m.mu.Unlock()

	_, inserted := tab.Insert(key, value)
	return inserted
}

// Contains reports whether a value is stored under key.
func (m *Map[K, V]) Contains(key K) bool {
	tab := m.lockTable()
	defer m.mu.Unlock()

	return tab.Lookup(key) != nil
}

// Get returns a pointer to the value stored under key, or nil and false
// if there is none. The pointer stays valid after Get returns and is
// never invalidated by later inserts.
func (m *Map[K, V]) Get(key K) (*V, bool) {
	tab := m.lockTable()
	defer m.mu.Unlock()

	v := tab.Lookup(key)
	return v, v != nil
}

// GetOrInsert returns the value stored under key, calling creator to
// make one if necessary. The creator is called at most once per absent
// key, while the Map's mutex is held.
func (m *Map[K, V]) GetOrInsert(key K, creator func() V) *V {
	v, _ := m.GetOrTryInsert(key, func() (V, error) { return creator(), nil })
	return v
}

// GetOrTryInsert returns the value stored under key, calling creator to
// make one if necessary. A creator error is returned to the caller
// unchanged and nothing is stored, so a later call may retry. The
// creator is called at most once per absent key, while the Map's mutex
// is held; if it panics the mutex is released during unwinding and the
// key is left absent.
func (m *Map[K, V]) GetOrTryInsert(key K, creator func() (V, error)) (*V, error) {
	tab := m.lockTable()
	defer m.mu.Unlock()

	if v := tab.Lookup(key); v != nil {
		return v, nil
	}
	value, err := creator()
	if err != nil {
		return nil, err
	}
	v, _ := tab.Insert(key, value)
	return v, nil
}

// Len returns the number of stored keys.
func (m *Map[K, V]) Len() int {
	tab := m.lockTable()
	defer m.mu.Unlock()

	return tab.Len()
}

// IsEmpty reports whether the Map stores no keys.
func (m *Map[K, V]) IsEmpty() bool { return m.Len() == 0 }

// Clone returns a new Map with its own mutex and copies of every entry,
// sharing no storage with m. It hashes keys the same way m does.
func (m *Map[K, V]) Clone() *Map[K, V] {
	tab := m.lockTable()
	defer m.mu.Unlock()

	return &Map[K, V]{hash: m.hash, tab: tab.Clone()}
}
