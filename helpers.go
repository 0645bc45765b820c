package minioc

import (
	"fmt"
	"reflect"
)

// TypeOf returns the service identity of T. Unlike reflect.TypeOf on a
// value, it works for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterScope registers T with a transient lifetime.
func RegisterScope[T any](c *Container) error {
	return c.RegisterScope(TypeOf[T]())
}

// RegisterScopeAs binds TI to the implementation T with a transient lifetime.
//
// Example:
//
//	minioc.RegisterScopeAs[UserStore, *SQLUserStore](c)
func RegisterScopeAs[TI, T any](c *Container) error {
	return c.RegisterScopeAs(TypeOf[TI](), TypeOf[T]())
}

// RegisterSingle registers T with a singleton lifetime.
func RegisterSingle[T any](c *Container, opts ...RegisterOption) error {
	return c.RegisterSingle(TypeOf[T](), opts...)
}

// RegisterSingleAs binds TI to the implementation T with a singleton lifetime.
func RegisterSingleAs[TI, T any](c *Container, opts ...RegisterOption) error {
	return c.RegisterSingleAs(TypeOf[TI](), TypeOf[T](), opts...)
}

// RegisterSingleFactory registers a singleton of T built by factory on first
// resolution.
func RegisterSingleFactory[T any](c *Container, factory func() (T, error), opts ...RegisterOption) error {
	if factory == nil {
		return ErrInvalidRegistration(TypeOf[T]().String(), "factory cannot be nil")
	}

	return c.RegisterFactory(TypeOf[T](), func() (any, error) {
		return factory()
	}, opts...)
}

// RegisterSingleProvider registers a singleton of T built by provider on
// first resolution, with access to the container's other services.
func RegisterSingleProvider[T any](c *Container, provider func(Resolver) (T, error), opts ...RegisterOption) error {
	if provider == nil {
		return ErrInvalidRegistration(TypeOf[T]().String(), "provider cannot be nil")
	}

	return c.RegisterProvider(TypeOf[T](), func(r Resolver) (any, error) {
		return provider(r)
	}, opts...)
}

// RegisterValue registers an already built instance as the singleton of T.
func RegisterValue[T any](c *Container, instance T, opts ...RegisterOption) error {
	return c.RegisterFactory(TypeOf[T](), func() (any, error) {
		return instance, nil
	}, opts...)
}

// UnRegister removes every registration of T. See [Container.Unregister].
func UnRegister[T any](c *Container) {
	c.Unregister(TypeOf[T]())
}

// UnRegisterKey removes the keyed registration of T. See
// [Container.UnregisterKey].
func UnRegisterKey[T any](c *Container, key string) {
	c.UnregisterKey(TypeOf[T](), key)
}

// GetInstance resolves the unkeyed registration of T.
//
//	db, err := minioc.GetInstance[*Database](c)
func GetInstance[T any](r Resolver) (T, error) {
	return GetInstanceKey[T](r, defaultKey)
}

// GetInstanceKey resolves T under key.
func GetInstanceKey[T any](r Resolver, key string) (T, error) {
	var zero T

	instance, err := r.GetInstance(TypeOf[T](), key)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(TypeOf[T]().String(), instance)
	}

	return typed, nil
}

// MustGetInstance resolves or panics - use only during startup.
func MustGetInstance[T any](r Resolver) T {
	instance, err := GetInstance[T](r)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", TypeOf[T](), err))
	}

	return instance
}
