package minioc

import (
	"fmt"
	"reflect"
)

// typeKey uniquely identifies a service by its type and key.
type typeKey struct {
	typ reflect.Type
	key string // Empty for unkeyed services
}

// String returns a human-readable representation of the type key
func (k typeKey) String() string {
	typeName := "<nil>"
	if k.typ != nil {
		typeName = k.typ.String()
	}
	if k.key == defaultKey {
		return typeName
	}
	return fmt.Sprintf("%s[key=%s]", typeName, k.key)
}

// typeRegistry records which implementation answers each identity, the
// lifetime of each identity and the constructor selected for each
// implementation. It is guarded by the owning container's lock.
type typeRegistry struct {
	implementations map[reflect.Type]reflect.Type
	lifetimes       map[reflect.Type]Lifetime
	constructors    map[reflect.Type]*constructorInfo   // implementation -> selected
	declared        map[reflect.Type][]*constructorInfo // implementation -> declared, in order
	supplied        map[reflect.Type]bool               // identities built by a user factory
}

// newTypeRegistry creates a new type registry
func newTypeRegistry() *typeRegistry {
	return &typeRegistry{
		implementations: make(map[reflect.Type]reflect.Type),
		lifetimes:       make(map[reflect.Type]Lifetime),
		constructors:    make(map[reflect.Type]*constructorInfo),
		declared:        make(map[reflect.Type][]*constructorInfo),
		supplied:        make(map[reflect.Type]bool),
	}
}

// bind records identity -> impl. Binding the same pair twice is allowed;
// binding a different implementation is a conflict. added reports whether
// the binding is new.
func (r *typeRegistry) bind(identity, impl reflect.Type) (added bool, err error) {
	if existing, ok := r.implementations[identity]; ok {
		if existing != impl {
			return false, ErrConflict(identity.String(),
				fmt.Sprintf("already bound to '%s'", existing))
		}
		return false, nil
	}

	r.implementations[identity] = impl
	return true, nil
}

// isBound checks if identity has an implementation binding
func (r *typeRegistry) isBound(identity reflect.Type) bool {
	_, ok := r.implementations[identity]
	return ok
}

// lookupImplementation returns the implementation bound to identity, or
// identity itself when it is self-registered or unbound.
func (r *typeRegistry) lookupImplementation(identity reflect.Type) reflect.Type {
	if impl, ok := r.implementations[identity]; ok && impl != nil {
		return impl
	}
	return identity
}

// unbind removes the binding of identity and the constructor selected for
// its implementation.
func (r *typeRegistry) unbind(identity reflect.Type) {
	impl := r.lookupImplementation(identity)
	delete(r.implementations, identity)
	delete(r.constructors, impl)
	delete(r.supplied, identity)
}

// setLifetime records the lifetime of identity. The first write wins; added
// reports whether this call recorded it.
func (r *typeRegistry) setLifetime(identity reflect.Type, lifetime Lifetime) (added bool) {
	if _, ok := r.lifetimes[identity]; ok {
		return false
	}
	r.lifetimes[identity] = lifetime
	return true
}

// lifetime returns the recorded lifetime of identity.
func (r *typeRegistry) lifetime(identity reflect.Type) (Lifetime, bool) {
	l, ok := r.lifetimes[identity]
	return l, ok
}

// hasConstructor checks if a constructor has been selected for impl
func (r *typeRegistry) hasConstructor(impl reflect.Type) bool {
	_, ok := r.constructors[impl]
	return ok
}

// markSupplied records that identity is built by a user factory. added
// reports whether the mark is new.
func (r *typeRegistry) markSupplied(identity reflect.Type) (added bool) {
	if r.supplied[identity] {
		return false
	}
	r.supplied[identity] = true
	return true
}

// hasConstructorBinding checks if identity knows how to build itself, either
// through a selected constructor or a user factory.
func (r *typeRegistry) hasConstructorBinding(identity reflect.Type) bool {
	return r.hasConstructor(identity) || r.supplied[identity]
}

// constructorFor returns the constructor selected for impl, selecting and
// memoizing it on first use.
func (r *typeRegistry) constructorFor(impl reflect.Type) (*constructorInfo, error) {
	if info, ok := r.constructors[impl]; ok {
		return info, nil
	}

	info, err := selectConstructor(impl, r.declared[impl])
	if err != nil {
		return nil, err
	}

	r.constructors[impl] = info
	return info, nil
}

// declare appends a constructor for its result type. Declaring after a
// constructor was selected for that type is a conflict.
func (r *typeRegistry) declare(info *constructorInfo) error {
	if r.hasConstructor(info.out) {
		return ErrConflict(info.out.String(),
			"constructor declared after the type was registered")
	}

	r.declared[info.out] = append(r.declared[info.out], info)
	return nil
}
