package minioc

import (
	"reflect"

	"go.uber.org/zap"
)

// Resolver resolves service instances. Both [*Container] and the resolver
// handed to providers implement it.
type Resolver interface {
	GetInstance(identity reflect.Type, key string) (any, error)
}

// lockedResolver resolves on behalf of a provider running under the
// container lock.
type lockedResolver struct {
	c *Container
}

func (r lockedResolver) GetInstance(identity reflect.Type, key string) (any, error) {
	if identity == nil {
		return nil, ErrServiceNotFound("<nil>", key)
	}
	return r.c.resolveLocked(identity, key)
}

// RegisterScope registers a concrete type with a transient lifetime.
func (c *Container) RegisterScope(t reflect.Type) error {
	return c.registerSelf(t, Transient, &registerConfig{key: defaultKey}, nil)
}

// RegisterScopeAs binds identity to impl with a transient lifetime.
func (c *Container) RegisterScopeAs(identity, impl reflect.Type) error {
	return c.registerAs(identity, impl, Transient, &registerConfig{key: defaultKey})
}

// RegisterSingle registers a concrete type with a singleton lifetime.
func (c *Container) RegisterSingle(t reflect.Type, opts ...RegisterOption) error {
	return c.registerSelf(t, Singleton, applyRegisterOptions(opts), nil)
}

// RegisterSingleAs binds identity to impl with a singleton lifetime.
func (c *Container) RegisterSingleAs(identity, impl reflect.Type, opts ...RegisterOption) error {
	return c.registerAs(identity, impl, Singleton, applyRegisterOptions(opts))
}

// RegisterFactory registers a singleton built by factory on first
// resolution. The factory runs while the container is locked and must not
// call back into the container; use [Container.RegisterProvider] for
// factories that need other services. [CreateImmediately] is ignored.
func (c *Container) RegisterFactory(t reflect.Type, factory func() (any, error), opts ...RegisterOption) error {
	if factory == nil {
		return ErrInvalidRegistration(typeName(t), "factory cannot be nil")
	}

	cfg := applyRegisterOptions(opts)
	cfg.createImmediately = false

	return c.registerSelf(t, Singleton, cfg, suppliedFactory(t, factory))
}

// RegisterProvider registers a singleton built by provider on first
// resolution. The provider receives a [Resolver] for its own dependencies.
// [CreateImmediately] is ignored.
//
// Example:
//
//	c.RegisterProvider(reflect.TypeOf((*Cache)(nil)).Elem(), func(r minioc.Resolver) (any, error) {
//	    db, err := minioc.GetInstance[*Database](r)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewRedisCache(db), nil
//	})
func (c *Container) RegisterProvider(t reflect.Type, provider func(Resolver) (any, error), opts ...RegisterOption) error {
	if provider == nil {
		return ErrInvalidRegistration(typeName(t), "provider cannot be nil")
	}

	cfg := applyRegisterOptions(opts)
	cfg.createImmediately = false

	return c.registerSelf(t, Singleton, cfg, suppliedFactory(t, func() (any, error) {
		return provider(lockedResolver{c: c})
	}))
}

// DeclareConstructor declares constructor as a constructor of its result
// type. Declarations must happen before the type is registered.
func (c *Container) DeclareConstructor(constructor any, opts ...ConstructorOption) error {
	info, err := analyzeConstructor(constructor)
	if err != nil {
		return err
	}

	for _, opt := range opts {
		opt.applyConstructor(info)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.declare(info); err != nil {
		return err
	}

	c.logger.Debug("constructor declared",
		zap.Stringer("implementation", info.out),
		zap.Int("params", len(info.params)),
		zap.Bool("preferred", info.preferred),
		zap.Bool("public", info.public),
	)

	return nil
}

// Unregister removes every registration of t: its implementation binding,
// all factory entries and all cached instances. The lifetime recorded for t
// is kept, so a later registration of t inherits it.
func (c *Container) Unregister(t reflect.Type) {
	if t == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.unregisterLocked(t)

	c.logger.Debug("service unregistered", zap.Stringer("service", t))
}

// UnregisterKey removes the cached instance and factory entry of (t, key)
// only. The binding of t and its other keys stay registered.
func (c *Container) UnregisterKey(t reflect.Type, key string) {
	if t == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.unregisterKeyLocked(t, key)

	c.logger.Debug("service key unregistered",
		zap.Stringer("service", t),
		zap.String("key", key),
	)
}

// GetInstance resolves identity under key. An empty key selects the
// unkeyed registration; a key without its own registration falls back to
// the unkeyed one.
func (c *Container) GetInstance(identity reflect.Type, key string) (any, error) {
	if identity == nil {
		return nil, ErrServiceNotFound("<nil>", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.resolveLocked(identity, key)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
