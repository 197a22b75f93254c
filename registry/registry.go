// Package registry provides named, lazily constructed singletons on
// top of a memo map: the first Get for a name builds the instance, and
// every later Get or Lookup for that name returns the same pointer.
package registry

import (
	"github.com/zeebo/errs"

	"github.com/zeebo/memomap"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("registry")

// Registry memoizes named instances of T, constructing each at most
// once. It is safe for concurrent use.
type Registry[T any] struct {
	entries *memomap.Map[string, T]
}

// New constructs an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		entries: memomap.NewHasher[string, T](memomap.StringHasher),
	}
}

// Get returns the instance stored under name, calling build to
// construct it on first use. Build runs while the registry is locked,
// so exactly one build per name ever succeeds and concurrent callers
// observe its result. A failed build stores nothing and the wrapped
// error is returned; a later Get may retry.
func (r *Registry[T]) Get(name string, build func() (T, error)) (*T, error) {
	v, err := r.entries.GetOrTryInsert(name, build)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return v, nil
}

// Lookup returns the instance stored under name, or nil and false if
// none has been built yet.
func (r *Registry[T]) Lookup(name string) (*T, bool) {
	return r.entries.Get(name)
}

// Len returns the number of built instances.
func (r *Registry[T]) Len() int { return r.entries.Len() }

// Names returns the registered names in unspecified order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, r.entries.Len())
	r.entries.Range(func(name string, _ *T) bool {
		names = append(names, name)
		return true
	})
	return names
}
