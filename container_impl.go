package minioc

import (
	"errors"
	"reflect"

	"github.com/xraph/go-utils/errs"
	"go.uber.org/zap"
)

// rollback collects undo steps for a registration that may still fail.
type rollback []func()

func (r *rollback) add(fn func()) {
	*r = append(*r, fn)
}

// run undoes the recorded steps in reverse order.
func (r rollback) run() {
	for i := len(r) - 1; i >= 0; i-- {
		r[i]()
	}
}

// =============================================================================
// REGISTRATION
// =============================================================================

// registerSelf registers identity as its own implementation. A nil factory
// means instances are built through the identity's selected constructor.
func (c *Container) registerSelf(identity reflect.Type, lifetime Lifetime, cfg *registerConfig, factory factoryFunc) error {
	if identity == nil {
		return ErrInvalidRegistration("<nil>", "type cannot be nil")
	}
	if factory == nil && identity.Kind() == reflect.Interface {
		return ErrInvalidRegistration(identity.String(), "an interface cannot be registered alone")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg.key == defaultKey {
		if _, exists := c.factories[identity][defaultKey]; exists {
			// Bound to itself: repeat registration. Otherwise the default
			// entry belongs to another implementation.
			if !c.registry.hasConstructorBinding(identity) {
				return ErrConflict(identity.String(), "already registered")
			}
			return nil
		}
	}

	var undo rollback

	added, err := c.registry.bind(identity, identity)
	if err != nil {
		return err
	}
	if added {
		undo.add(func() { delete(c.registry.implementations, identity) })
	}

	if factory != nil {
		if c.registry.markSupplied(identity) {
			undo.add(func() { delete(c.registry.supplied, identity) })
		}
	} else {
		if err := c.selectConstructorLocked(identity, &undo); err != nil {
			undo.run()
			return err
		}
		factory = c.constructorFactory(identity, identity)
	}

	return c.commitLocked(identity, identity, lifetime, cfg, factory, &undo)
}

// registerAs binds identity to impl and registers the binding.
func (c *Container) registerAs(identity, impl reflect.Type, lifetime Lifetime, cfg *registerConfig) error {
	if identity == nil || impl == nil {
		return ErrInvalidRegistration("<nil>", "types cannot be nil")
	}
	if impl.Kind() == reflect.Interface {
		return ErrInvalidRegistration(identity.String(), "implementation '"+impl.String()+"' must be a concrete type")
	}
	if !impl.AssignableTo(identity) {
		return ErrInvalidRegistration(identity.String(), "'"+impl.String()+"' is not assignable to it")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var undo rollback

	added, err := c.registry.bind(identity, impl)
	if err != nil {
		return err
	}
	if added {
		undo.add(func() { delete(c.registry.implementations, identity) })
	}

	if err := c.selectConstructorLocked(impl, &undo); err != nil {
		undo.run()
		return err
	}

	return c.commitLocked(identity, impl, lifetime, cfg, c.constructorFactory(identity, impl), &undo)
}

// selectConstructorLocked selects the constructor of impl unless one is
// already selected.
func (c *Container) selectConstructorLocked(impl reflect.Type, undo *rollback) error {
	if c.registry.hasConstructor(impl) {
		return nil
	}
	if _, err := c.registry.constructorFor(impl); err != nil {
		return err
	}
	undo.add(func() { delete(c.registry.constructors, impl) })
	return nil
}

// commitLocked stores the factory entry and lifetime, then builds the
// instance when the registration asks for it. A failed eager build undoes
// everything this registration added.
func (c *Container) commitLocked(identity, impl reflect.Type, lifetime Lifetime, cfg *registerConfig, factory factoryFunc, undo *rollback) error {
	if c.addFactoryLocked(identity, cfg.key, factory) {
		undo.add(func() { delete(c.factories[identity], cfg.key) })
	}
	if c.registry.setLifetime(identity, lifetime) {
		undo.add(func() { delete(c.registry.lifetimes, identity) })
	}

	if cfg.createImmediately {
		if _, err := c.getOrCreateSingletonLocked(identity, cfg.key); err != nil {
			undo.run()
			return err
		}
	}

	c.logger.Debug("service registered",
		zap.Stringer("service", identity),
		zap.Stringer("implementation", impl),
		zap.Stringer("lifetime", lifetime),
		zap.String("key", cfg.key),
		zap.Bool("create_immediately", cfg.createImmediately),
	)

	return nil
}

// addFactoryLocked stores a factory entry for (identity, key). An existing
// entry is kept; added reports whether factory was stored.
func (c *Container) addFactoryLocked(identity reflect.Type, key string, factory factoryFunc) (added bool) {
	bucket, ok := c.factories[identity]
	if !ok {
		bucket = make(map[string]factoryFunc)
		c.factories[identity] = bucket
	}

	if _, exists := bucket[key]; exists {
		return false
	}

	bucket[key] = factory
	return true
}

// unregisterLocked removes the binding, selected constructor, every factory
// entry and every cached instance of identity. The lifetime stays recorded.
func (c *Container) unregisterLocked(identity reflect.Type) {
	delete(c.instances, identity)
	delete(c.factories, identity)
	c.registry.unbind(identity)
}

// unregisterKeyLocked removes only the cached instance and factory entry of
// (identity, key).
func (c *Container) unregisterKeyLocked(identity reflect.Type, key string) {
	if bucket, ok := c.instances[identity]; ok {
		delete(bucket, key)
	}
	if bucket, ok := c.factories[identity]; ok {
		delete(bucket, key)
	}
}

// =============================================================================
// RESOLUTION
// =============================================================================

// resolveLocked returns an instance of (identity, key). Singletons go
// through the instance cache; everything else is built by its factory.
func (c *Container) resolveLocked(identity reflect.Type, key string) (any, error) {
	if lifetime, ok := c.registry.lifetime(identity); ok && lifetime == Singleton {
		return c.getOrCreateSingletonLocked(identity, key)
	}
	return c.createInstanceLocked(identity, key)
}

// getOrCreateSingletonLocked returns the cached instance of (identity, key),
// building and caching it on first use. Nothing is cached when the build
// fails.
func (c *Container) getOrCreateSingletonLocked(identity reflect.Type, key string) (any, error) {
	bucket, ok := c.instances[identity]
	if !ok && !c.registry.isBound(identity) {
		return nil, ErrServiceNotFound(identity.String(), key)
	}

	if instance, ok := bucket[key]; ok {
		return instance, nil
	}

	instance, err := c.createInstanceLocked(identity, key)
	if err != nil {
		return nil, err
	}

	// The build may have created the bucket for another key.
	bucket, ok = c.instances[identity]
	if !ok {
		bucket = make(map[string]any)
		c.instances[identity] = bucket
	}
	bucket[key] = instance

	c.logger.Debug("singleton created",
		zap.Stringer("service", identity),
		zap.String("key", key),
	)

	return instance, nil
}

// createInstanceLocked invokes the factory entry of (identity, key), falling
// back to the unkeyed entry when the key has none.
func (c *Container) createInstanceLocked(identity reflect.Type, key string) (any, error) {
	bucket := c.factories[identity]

	factory, ok := bucket[key]
	if !ok {
		factory, ok = bucket[defaultKey]
	}
	if !ok {
		return nil, ErrServiceNotFound(identity.String(), key)
	}

	if err := c.enterLocked(typeKey{typ: identity, key: key}); err != nil {
		return nil, err
	}
	defer c.leaveLocked()

	return factory()
}

// constructorFactory returns the factory that builds impl through its
// selected constructor, on behalf of identity.
func (c *Container) constructorFactory(identity, impl reflect.Type) factoryFunc {
	return func() (any, error) {
		return c.makeInstanceLocked(identity, impl)
	}
}

// makeInstanceLocked resolves every constructor parameter of impl with the
// default key and calls the constructor positionally.
func (c *Container) makeInstanceLocked(identity, impl reflect.Type) (any, error) {
	info, err := c.registry.constructorFor(impl)
	if err != nil {
		return nil, err
	}

	args := make([]reflect.Value, len(info.params))
	for i, param := range info.params {
		dep, err := c.resolveLocked(param, defaultKey)
		if err != nil {
			return nil, err
		}

		arg, err := argumentValue(param, dep)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	instance, err := info.call(args)
	if err != nil {
		return nil, NewServiceError(identity.String(), "construct", err)
	}

	return instance, nil
}

// argumentValue converts a resolved dependency into a constructor argument.
func argumentValue(param reflect.Type, dep any) (reflect.Value, error) {
	if dep == nil {
		return reflect.Zero(param), nil
	}

	value := reflect.ValueOf(dep)
	if !value.Type().AssignableTo(param) {
		return reflect.Value{}, ErrTypeMismatch(param.String(), dep)
	}

	return value, nil
}

// suppliedFactory adapts a user factory: results must be assignable to
// identity, and errors that are not already container errors are wrapped.
func suppliedFactory(identity reflect.Type, build func() (any, error)) factoryFunc {
	return func() (any, error) {
		instance, err := build()
		if err != nil {
			var containerErr *errs.Error
			if errors.As(err, &containerErr) {
				return nil, err
			}
			return nil, NewServiceError(identity.String(), "factory", err)
		}

		if instance != nil && !reflect.TypeOf(instance).AssignableTo(identity) {
			return nil, ErrTypeMismatch(identity.String(), instance)
		}

		return instance, nil
	}
}

// enterLocked pushes k on the resolution stack, failing when k is already
// being built further up the stack.
func (c *Container) enterLocked(k typeKey) error {
	for i, active := range c.resolving {
		if active != k {
			continue
		}

		cycle := make([]string, 0, len(c.resolving)-i+1)
		for _, step := range c.resolving[i:] {
			cycle = append(cycle, step.String())
		}
		cycle = append(cycle, k.String())

		return ErrCircularDependency(cycle)
	}

	c.resolving = append(c.resolving, k)
	return nil
}

// leaveLocked pops the resolution stack.
func (c *Container) leaveLocked() {
	c.resolving = c.resolving[:len(c.resolving)-1]
}
