package minioc

import "reflect"

// ServiceLocator is the generic service-locator shape. [*Container]
// implements it; multi-binding is not supported, so GetAllInstances always
// fails.
type ServiceLocator interface {
	GetService(serviceType reflect.Type) (any, error)
	GetInstance(serviceType reflect.Type, key string) (any, error)
	GetAllInstances(serviceType reflect.Type) ([]any, error)
}

var _ ServiceLocator = (*Container)(nil)

// GetService resolves the unkeyed registration of serviceType.
func (c *Container) GetService(serviceType reflect.Type) (any, error) {
	return c.GetInstance(serviceType, defaultKey)
}

// GetAllInstances always returns an unsupported-operation error.
func (c *Container) GetAllInstances(serviceType reflect.Type) ([]any, error) {
	return nil, ErrUnsupportedOperation("GetAllInstances", typeName(serviceType))
}

// GetAllInstances resolves every instance of T through l. With a
// [*Container] it always fails with an unsupported-operation error.
func GetAllInstances[T any](l ServiceLocator) ([]T, error) {
	instances, err := l.GetAllInstances(TypeOf[T]())
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(instances))
	for _, instance := range instances {
		value, ok := instance.(T)
		if !ok {
			return nil, ErrTypeMismatch(TypeOf[T]().String(), instance)
		}
		typed = append(typed, value)
	}

	return typed, nil
}
