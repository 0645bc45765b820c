package minioc

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Lazy wraps a dependency that is resolved on first access.
// Handing a Lazy to a service instead of the dependency itself defers
// resolution until the service actually needs it, which breaks
// construction-time cycles.
type Lazy[T any] struct {
	resolver Resolver
	key      string
	once     sync.Once
	value    T
	err      error
	resolved atomic.Bool
}

// NewLazy creates a lazy handle on the registration of T under key.
// An empty key selects the unkeyed registration. The handle takes the
// container itself, never the Resolver handed to a provider: that one is
// only valid while the provider runs.
func NewLazy[T any](c *Container, key string) *Lazy[T] {
	return &Lazy[T]{
		resolver: c,
		key:      key,
	}
}

// Get resolves the dependency and returns it.
// The resolution happens only once; subsequent calls return the cached result.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = GetInstanceKey[T](l.resolver, l.key)
		l.resolved.Store(l.err == nil)
	})

	return l.value, l.err
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", TypeOf[T](), err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved.Load()
}

// Key returns the key the dependency is resolved under.
func (l *Lazy[T]) Key() string {
	return l.key
}

// OptionalLazy wraps an optional dependency that is resolved on first access.
// A missing registration yields the zero value without error.
type OptionalLazy[T any] struct {
	lazy  Lazy[T]
	found atomic.Bool
}

// NewOptionalLazy creates an optional lazy handle on T under key.
func NewOptionalLazy[T any](c *Container, key string) *OptionalLazy[T] {
	return &OptionalLazy[T]{lazy: Lazy[T]{resolver: c, key: key}}
}

// Get resolves the dependency and returns it.
// Returns the zero value without error if the dependency is not registered.
func (l *OptionalLazy[T]) Get() (T, error) {
	l.lazy.once.Do(func() {
		l.lazy.value, l.lazy.err = GetInstanceKey[T](l.lazy.resolver, l.lazy.key)
		if errors.Is(l.lazy.err, ErrServiceNotFoundSentinel) {
			l.lazy.err = nil
			l.lazy.resolved.Store(true)
			return
		}

		l.lazy.resolved.Store(l.lazy.err == nil)
		l.found.Store(l.lazy.err == nil)
	})

	return l.lazy.value, l.lazy.err
}

// IsResolved returns true if the dependency has been resolved.
func (l *OptionalLazy[T]) IsResolved() bool {
	return l.lazy.IsResolved()
}

// IsFound returns true if the dependency was found (only valid after resolution).
func (l *OptionalLazy[T]) IsFound() bool {
	return l.found.Load()
}

// Provider resolves T on every call. With a transient registration each
// call returns a fresh instance.
type Provider[T any] struct {
	resolver Resolver
	key      string
}

// NewProvider creates a provider of T under key.
func NewProvider[T any](c *Container, key string) *Provider[T] {
	return &Provider[T]{
		resolver: c,
		key:      key,
	}
}

// Provide resolves and returns an instance of the dependency.
func (p *Provider[T]) Provide() (T, error) {
	return GetInstanceKey[T](p.resolver, p.key)
}

// MustProvide resolves and returns an instance, panicking on error.
func (p *Provider[T]) MustProvide() T {
	value, err := p.Provide()
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", TypeOf[T](), err))
	}

	return value
}
