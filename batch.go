package minioc

import "go.uber.org/multierr"

// Registration is one deferred registration for RegisterAll.
type Registration struct {
	// Name describes the registration in diagnostics.
	Name string

	apply func(c *Container) error
}

// Scope creates a Registration of T with a transient lifetime.
func Scope[T any]() Registration {
	return Registration{
		Name:  TypeOf[T]().String(),
		apply: RegisterScope[T],
	}
}

// ScopeAs creates a Registration binding TI to T with a transient lifetime.
func ScopeAs[TI, T any]() Registration {
	return Registration{
		Name:  TypeOf[TI]().String(),
		apply: RegisterScopeAs[TI, T],
	}
}

// Single creates a Registration of T with a singleton lifetime.
func Single[T any](opts ...RegisterOption) Registration {
	return Registration{
		Name: TypeOf[T]().String(),
		apply: func(c *Container) error {
			return RegisterSingle[T](c, opts...)
		},
	}
}

// SingleAs creates a Registration binding TI to T with a singleton lifetime.
func SingleAs[TI, T any](opts ...RegisterOption) Registration {
	return Registration{
		Name: TypeOf[TI]().String(),
		apply: func(c *Container) error {
			return RegisterSingleAs[TI, T](c, opts...)
		},
	}
}

// Factory creates a Registration of a singleton of T built by factory.
func Factory[T any](factory func() (T, error), opts ...RegisterOption) Registration {
	return Registration{
		Name: TypeOf[T]().String(),
		apply: func(c *Container) error {
			return RegisterSingleFactory(c, factory, opts...)
		},
	}
}

// RegisterAll applies every registration in order. A failed registration
// does not stop the ones after it; all failures are returned combined.
//
// Example:
//
//	err := minioc.RegisterAll(c,
//	    minioc.Single[*Config](minioc.CreateImmediately()),
//	    minioc.SingleAs[UserStore, *SQLUserStore](),
//	    minioc.Scope[*RequestHandler](),
//	)
func RegisterAll(c *Container, registrations ...Registration) error {
	var err error
	for _, reg := range registrations {
		if reg.apply == nil {
			err = multierr.Append(err, ErrInvalidRegistration(reg.Name, "empty registration"))
			continue
		}
		err = multierr.Append(err, reg.apply(c))
	}
	return err
}
