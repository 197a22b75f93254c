package memomap

import "github.com/zeebo/memomap/internal/table"

// Iterator walks every entry of a Map in unspecified order.
//
// The Map's mutex is held from the Iterator call that created it until
// Close, so the Map is frozen while the Iterator is alive. Calling any
// method on the same Map from the same goroutine before Close
// deadlocks, and calls from other goroutines block until Close. This is
// the cost of holding one exclusive lock rather than snapshotting; use
// the Iterator with care.
type Iterator[K comparable, V any] struct {
	m      *Map[K, V]
	cur    table.Cursor[K, V]
	closed bool
}

// Iterator acquires the Map's mutex and returns a cursor positioned
// before the first entry. The caller must call Close, typically with
// defer.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	tab := m.lockTable()
	return &Iterator[K, V]{m: m, cur: tab.Cursor()}
}

// Next advances to the next entry, reporting false when none remain.
func (it *Iterator[K, V]) Next() bool { return it.cur.Next() }

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K { return it.cur.Key() }

// Value returns a pointer to the value of the current entry. The
// pointer stays valid after Close.
func (it *Iterator[K, V]) Value() *V { return it.cur.Value() }

// Close releases the Map's mutex. Only the first call has any effect.
func (it *Iterator[K, V]) Close() {
	if !it.closed {
		it.closed = true
		it.m.mu.Unlock()
	}
}

// KeysIterator walks every key of a Map in unspecified order, with the
// same locking behavior as Iterator.
type KeysIterator[K comparable, V any] struct {
	it *Iterator[K, V]
}

// Keys acquires the Map's mutex and returns a cursor over every key.
// The caller must call Close, typically with defer.
func (m *Map[K, V]) Keys() *KeysIterator[K, V] {
	return &KeysIterator[K, V]{it: m.Iterator()}
}

// Next advances to the next key, reporting false when none remain.
func (ks *KeysIterator[K, V]) Next() bool { return ks.it.Next() }

// Key returns the current key.
func (ks *KeysIterator[K, V]) Key() K { return ks.it.Key() }

// Close releases the Map's mutex. Only the first call has any effect.
func (ks *KeysIterator[K, V]) Close() { ks.it.Close() }

// Range calls fn with each entry in unspecified order until fn reports
// false. The Map's mutex is held for the whole walk and released on
// every exit path, including a panicking fn, so unlike Iterator there
// is no Close to forget. The value pointers passed to fn stay valid
// after Range returns.
func (m *Map[K, V]) Range(fn func(key K, value *V) bool) {
	tab := m.lockTable()
	defer m.mu.Unlock()

	for cur := tab.Cursor(); cur.Next(); {
		if !fn(cur.Key(), cur.Value()) {
			return
		}
	}
}
