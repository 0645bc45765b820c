package minioc

import (
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructorInfo holds analyzed constructor metadata
type constructorInfo struct {
	fn        reflect.Value // Invalid for the implicit zero-value constructor
	out       reflect.Type
	params    []reflect.Type
	hasError  bool
	public    bool
	preferred bool
	implicit  bool
}

// analyzeConstructor inspects a constructor function and extracts its
// parameter and result types. Accepted shapes are func(deps...) T and
// func(deps...) (T, error) where T is a concrete type.
func analyzeConstructor(constructor any) (*constructorInfo, error) {
	if constructor == nil {
		return nil, ErrInvalidConstructor("<nil>", "constructor cannot be nil")
	}

	fnValue := reflect.ValueOf(constructor)
	fnType := fnValue.Type()
	name := fnType.String()

	if fnType.Kind() != reflect.Func {
		return nil, ErrInvalidConstructor(name, "constructor must be a function")
	}
	if fnValue.IsNil() {
		return nil, ErrInvalidConstructor(name, "constructor cannot be nil")
	}
	if fnType.IsVariadic() {
		return nil, ErrInvalidConstructor(name, "variadic constructors are not supported")
	}

	info := &constructorInfo{
		fn:     fnValue,
		public: true,
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, ErrInvalidConstructor(name, "second return value must be error")
		}
		info.hasError = true
	default:
		return nil, ErrInvalidConstructor(name, "constructor must return (T) or (T, error)")
	}

	info.out = fnType.Out(0)
	if info.out.Kind() == reflect.Interface {
		return nil, ErrInvalidConstructor(name, "constructor must return a concrete type")
	}

	for i := 0; i < fnType.NumIn(); i++ {
		info.params = append(info.params, fnType.In(i))
	}

	return info, nil
}

// implicitConstructor returns the zero-value constructor every struct type
// and pointer-to-struct type owns.
func implicitConstructor(t reflect.Type) (*constructorInfo, bool) {
	switch {
	case t.Kind() == reflect.Struct:
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
	default:
		return nil, false
	}

	return &constructorInfo{out: t, public: true, implicit: true}, true
}

// selectConstructor picks the constructor used to build impl. declared holds
// the constructors declared for impl, in declaration order.
func selectConstructor(impl reflect.Type, declared []*constructorInfo) (*constructorInfo, error) {
	candidates := make([]*constructorInfo, 0, len(declared)+1)
	candidates = append(candidates, declared...)
	// The implicit constructor, when present, is always last.
	if implicit, ok := implicitConstructor(impl); ok {
		candidates = append(candidates, implicit)
	}

	switch len(candidates) {
	case 0:
		return nil, ErrNoPublicConstructor(impl.String())
	case 1:
		if !candidates[0].public {
			return nil, ErrNoPublicConstructor(impl.String())
		}
		return candidates[0], nil
	case 2:
		if candidates[1].implicit {
			if !candidates[0].public {
				return nil, ErrNoPublicConstructor(impl.String())
			}
			return candidates[0], nil
		}
	}

	return preferredConstructor(impl, candidates)
}

// preferredConstructor breaks a tie between several constructors: exactly
// one of them must be marked Preferred.
func preferredConstructor(impl reflect.Type, candidates []*constructorInfo) (*constructorInfo, error) {
	var preferred *constructorInfo
	for _, candidate := range candidates {
		if !candidate.preferred {
			continue
		}
		if preferred != nil {
			return nil, ErrAmbiguousConstructor(impl.String(), len(candidates))
		}
		preferred = candidate
	}

	if preferred == nil {
		return nil, ErrAmbiguousConstructor(impl.String(), len(candidates))
	}
	if !preferred.public {
		return nil, ErrNoPublicConstructor(impl.String())
	}

	return preferred, nil
}

// call invokes the constructor with positional arguments.
func (ci *constructorInfo) call(args []reflect.Value) (any, error) {
	if ci.implicit {
		if ci.out.Kind() == reflect.Pointer {
			return reflect.New(ci.out.Elem()).Interface(), nil
		}
		return reflect.New(ci.out).Elem().Interface(), nil
	}

	results := ci.fn.Call(args)
	if ci.hasError {
		if errValue := results[1]; !errValue.IsNil() {
			return nil, errValue.Interface().(error)
		}
	}

	return results[0].Interface(), nil
}
