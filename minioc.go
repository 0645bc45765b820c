// Package minioc is a small reflection-based dependency injection container.
//
// Services are identified by their Go type, optionally qualified by a string
// key. An identity is answered either by itself (a concrete type) or by an
// implementation bound to it (an interface answered by a concrete type).
// Resolution builds implementations through a selected constructor and
// injects every constructor parameter by resolving its type again.
//
// # Quick Start
//
//	c := minioc.New()
//	_ = c.DeclareConstructor(NewUserService)
//	_ = minioc.RegisterSingle[*Database](c)
//	_ = minioc.RegisterScopeAs[UserStore, *UserService](c)
//
//	store, err := minioc.GetInstance[UserStore](c)
//
// # Lifetimes
//
// [Transient] registrations build a new instance on every resolution.
// [Singleton] registrations build one instance per (identity, key) pair, on
// first demand or at registration time with [CreateImmediately].
//
// # Constructors
//
// A struct type, or a pointer to one, always has an implicit zero-value
// constructor. Further constructors are declared per container with
// [Container.DeclareConstructor]; when more than one ordinary constructor
// exists, exactly one of them must carry the [Preferred] marker.
package minioc

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Lifetime controls how many instances the container creates for an identity.
type Lifetime int

const (
	// Transient builds a new instance on every resolution.
	Transient Lifetime = iota

	// Singleton builds one instance per (identity, key) and caches it for the
	// lifetime of the container.
	Singleton
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// defaultKey is the key of unkeyed registrations. An absent key and the empty
// key are the same thing, so no caller-supplied key can collide with it.
const defaultKey = ""

// factoryFunc builds one instance of a service identity. It is only invoked
// while the container lock is held.
type factoryFunc func() (any, error)

// Container is the dependency injection container. The zero value is not
// usable; create one with [New]. A Container is safe for concurrent use.
type Container struct {
	mu sync.Mutex

	registry  *typeRegistry
	factories map[reflect.Type]map[string]factoryFunc
	instances map[reflect.Type]map[string]any

	// resolving is the stack of (identity, key) pairs currently under
	// construction. Only touched while mu is held.
	resolving []typeKey

	logger *zap.Logger
}

// New creates an empty container.
func New(opts ...Option) *Container {
	cfg := &containerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Container{
		registry:  newTypeRegistry(),
		factories: make(map[reflect.Type]map[string]factoryFunc),
		instances: make(map[reflect.Type]map[string]any),
		logger:    cfg.logger,
	}
}
