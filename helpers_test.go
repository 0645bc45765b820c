package minioc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(&testLogger{}), TypeOf[*testLogger]())
	assert.Equal(t, reflect.Interface, TypeOf[userStore]().Kind())
	assert.Equal(t, "minioc.userStore", TypeOf[userStore]().String())
}

func TestGetInstance_TypeMismatch(t *testing.T) {
	c := New()
	require.NoError(t, RegisterSingleFactory(c, func() (userStore, error) {
		return &memUserStore{}, nil
	}))

	_, err := GetInstance[*sqlUserStore](c)
	assert.ErrorIs(t, err, ErrServiceNotFoundSentinel)

	_, err = GetInstanceKey[*memUserStore](mismatchResolver{instance: "text"}, "")
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}

type mismatchResolver struct {
	instance any
}

func (r mismatchResolver) GetInstance(reflect.Type, string) (any, error) {
	return r.instance, nil
}

func TestGetInstance_NilInstance(t *testing.T) {
	c := New()
	require.NoError(t, RegisterSingleFactory(c, func() (userStore, error) {
		return nil, nil
	}))

	store, err := GetInstance[userStore](c)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestMustGetInstance(t *testing.T) {
	c := New()
	require.NoError(t, RegisterSingle[*testLogger](c))

	assert.NotPanics(t, func() {
		assert.NotNil(t, MustGetInstance[*testLogger](c))
	})
	assert.Panics(t, func() {
		MustGetInstance[*testDatabase](c)
	})
}

func TestReflectLevelRegistration(t *testing.T) {
	c := New()
	require.NoError(t, c.DeclareConstructor(newTestDatabase))
	require.NoError(t, c.DeclareConstructor(newSQLUserStore))
	require.NoError(t, c.RegisterSingle(reflect.TypeOf(&testDatabase{}), CreateImmediately()))
	require.NoError(t, c.RegisterScopeAs(TypeOf[userStore](), reflect.TypeOf(&sqlUserStore{})))

	first, err := c.GetInstance(TypeOf[userStore](), "")
	require.NoError(t, err)
	second, err := c.GetService(TypeOf[userStore]())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Same(t, first.(*sqlUserStore).db, second.(*sqlUserStore).db)
}

func TestRegister_NilTypes(t *testing.T) {
	c := New()

	assert.ErrorIs(t, c.RegisterScope(nil), ErrInvalidRegistrationSentinel)
	assert.ErrorIs(t, c.RegisterSingle(nil), ErrInvalidRegistrationSentinel)
	assert.ErrorIs(t, c.RegisterScopeAs(nil, TypeOf[*testLogger]()), ErrInvalidRegistrationSentinel)
	assert.ErrorIs(t, c.RegisterSingleAs(TypeOf[userStore](), nil), ErrInvalidRegistrationSentinel)
	assert.False(t, c.IsRegistered(nil))
	assert.False(t, c.HasInstance(nil, ""))
}
