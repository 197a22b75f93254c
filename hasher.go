package memomap

import (
	"hash/maphash"

	"github.com/zeebo/xxh3"
)

// Hasher hashes keys for a Map. It must be a pure function of the key:
// equal keys must hash equally, every time. The Map does not defend
// against hashers that violate this.
type Hasher[K comparable] func(key K) uint64

// defaultHasher returns a Hasher over any comparable key type, seeded
// freshly so that every Map hashes differently.
func defaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 { return maphash.Comparable(seed, key) }
}

// StringHasher is a Hasher for string keys backed by xxh3.
func StringHasher(key string) uint64 { return xxh3.HashString(key) }
