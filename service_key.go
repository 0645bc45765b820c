package minioc

// ServiceKey provides type-safe keyed service identification.
// Use NewServiceKey to create typed keys for your services.
type ServiceKey[T any] struct {
	name string
}

// NewServiceKey creates a new typed service key.
// The type parameter T ensures type safety when registering and resolving services.
//
// Example:
//
//	var PrimaryDB = NewServiceKey[*Database]("primary")
//	var ReplicaDB = NewServiceKey[*Database]("replica")
func NewServiceKey[T any](name string) ServiceKey[T] {
	return ServiceKey[T]{name: name}
}

// Name returns the string name of the service key.
func (k ServiceKey[T]) Name() string {
	return k.name
}

// RegisterSingleWithKey registers T as a singleton under a typed service key.
//
// Example:
//
//	RegisterSingleWithKey(c, ReplicaDB, CreateImmediately())
func RegisterSingleWithKey[T any](c *Container, key ServiceKey[T], opts ...RegisterOption) error {
	return RegisterSingle[T](c, append(opts, WithKey(key.name))...)
}

// RegisterFactoryWithKey registers a singleton factory under a typed service key.
//
// Example:
//
//	RegisterFactoryWithKey(c, PrimaryDB, func() (*Database, error) {
//	    return OpenDatabase("postgres://primary")
//	})
func RegisterFactoryWithKey[T any](c *Container, key ServiceKey[T], factory func() (T, error)) error {
	return RegisterSingleFactory(c, factory, WithKey(key.name))
}

// ResolveWithKey resolves a service using a typed service key.
//
// Example:
//
//	db, err := ResolveWithKey(c, PrimaryDB)
func ResolveWithKey[T any](r Resolver, key ServiceKey[T]) (T, error) {
	return GetInstanceKey[T](r, key.name)
}

// MustWithKey resolves a service using a typed service key and panics on error.
//
// Example:
//
//	db := MustWithKey(c, PrimaryDB)
func MustWithKey[T any](r Resolver, key ServiceKey[T]) T {
	result, err := ResolveWithKey(r, key)
	if err != nil {
		panic(err)
	}
	return result
}

// HasKey checks if a singleton for the typed service key is cached.
func HasKey[T any](c *Container, key ServiceKey[T]) bool {
	return c.HasInstance(TypeOf[T](), key.name)
}

// UnregisterWithKey removes the registration behind a typed service key.
func UnregisterWithKey[T any](c *Container, key ServiceKey[T]) {
	c.UnregisterKey(TypeOf[T](), key.name)
}
