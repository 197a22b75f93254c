package memomap

import (
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func TestIterator(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		var m Map[int, string]
		m.Insert(1, "one")
		m.Insert(2, "two")
		m.Insert(3, "three")

		got := make(map[int]string)
		it := m.Iterator()
		for it.Next() {
			got[it.Key()] = *it.Value()
		}
		it.Close()

		assert.DeepEqual(t, got, map[int]string{1: "one", 2: "two", 3: "three"})
	})

	t.Run("Keys", func(t *testing.T) {
		var m Map[int, string]
		m.Insert(1, "one")
		m.Insert(2, "two")
		m.Insert(3, "three")

		got := make(map[int]bool)
		ks := m.Keys()
		for ks.Next() {
			got[ks.Key()] = true
		}
		ks.Close()

		assert.DeepEqual(t, got, map[int]bool{1: true, 2: true, 3: true})
	})

	t.Run("Empty", func(t *testing.T) {
		var m Map[int, int]

		it := m.Iterator()
		defer it.Close()

		assert.That(t, !it.Next())
	})

	t.Run("CloseUnlocks", func(t *testing.T) {
		var m Map[int, int]
		m.Insert(1, 1)

		it := m.Iterator()
		assert.That(t, it.Next())
		it.Close()
		it.Close()

		// would deadlock if Close leaked the mutex or double unlocked
		assert.That(t, m.Insert(2, 2))
	})

	t.Run("ValueOutlivesView", func(t *testing.T) {
		var m Map[int, int]
		m.Insert(1, 10)

		it := m.Iterator()
		assert.That(t, it.Next())
		p := it.Value()
		it.Close()

		for i := 2; i < 1000; i++ {
			m.Insert(i, i)
		}

		assert.Equal(t, *p, 10)
		q, _ := m.Get(1)
		assert.That(t, p == q)
	})

	t.Run("BlocksOtherGoroutines", func(t *testing.T) {
		var m Map[int, int]
		m.Insert(1, 1)

		it := m.Iterator()
		done := make(chan struct{})
		go func() {
			m.Insert(2, 2)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		select {
		case <-done:
			t.Fatal("insert finished while the iterator held the lock")
		default:
		}

		it.Close()
		<-done
		assert.Equal(t, m.Len(), 2)
	})
}

func TestRange(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		var m Map[int, string]
		m.Insert(1, "one")
		m.Insert(2, "two")
		m.Insert(3, "three")

		got := make(map[int]string)
		m.Range(func(k int, v *string) bool {
			got[k] = *v
			return true
		})

		assert.DeepEqual(t, got, map[int]string{1: "one", 2: "two", 3: "three"})
	})

	t.Run("EarlyStop", func(t *testing.T) {
		var m Map[int, int]
		for i := 0; i < 100; i++ {
			m.Insert(i, i)
		}

		seen := 0
		m.Range(func(int, *int) bool {
			seen++
			return seen < 10
		})
		assert.Equal(t, seen, 10)

		// the lock was released on the early return
		assert.That(t, m.Insert(100, 100))
	})

	t.Run("PanicUnlocks", func(t *testing.T) {
		var m Map[int, int]
		m.Insert(1, 1)

		func() {
			defer func() { assert.NotNil(t, recover()) }()
			m.Range(func(int, *int) bool { panic("boom") })
		}()

		assert.That(t, m.Insert(2, 2))
	})
}
