package minioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestRegisterAll_Basic(t *testing.T) {
	c := New()
	require.NoError(t, c.DeclareConstructor(newTestDatabase))
	require.NoError(t, c.DeclareConstructor(newSQLUserStore))

	err := RegisterAll(c,
		Single[*testDatabase](CreateImmediately()),
		SingleAs[userStore, *sqlUserStore](),
		Scope[*testLogger](),
		Factory(func() (*memUserStore, error) {
			return &memUserStore{users: map[int]string{1: "alice"}}, nil
		}, WithKey("memory")),
	)
	require.NoError(t, err)

	assert.True(t, c.HasInstance(TypeOf[*testDatabase](), ""))

	store, err := GetInstance[userStore](c)
	require.NoError(t, err)
	assert.Equal(t, "sql-user-7", store.Find(7))

	mem, err := GetInstanceKey[*memUserStore](c, "memory")
	require.NoError(t, err)
	assert.Equal(t, "alice", mem.Find(1))

	first, err := GetInstance[*testLogger](c)
	require.NoError(t, err)
	second, err := GetInstance[*testLogger](c)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestRegisterAll_ContinuesAfterFailure(t *testing.T) {
	c := New()
	require.NoError(t, RegisterSingleAs[userStore, *memUserStore](c))

	err := RegisterAll(c,
		SingleAs[userStore, *sqlUserStore](),
		Scope[testPort](),
		Scope[*testLogger](),
	)
	require.Error(t, err)

	errList := multierr.Errors(err)
	require.Len(t, errList, 2)
	assert.ErrorIs(t, errList[0], ErrConflictSentinel)
	assert.ErrorIs(t, errList[1], ErrNoPublicConstructorSentinel)

	// The registration after the failures still went through
	assert.True(t, c.IsRegistered(TypeOf[*testLogger]()))
}

func TestRegisterAll_EmptyRegistration(t *testing.T) {
	c := New()

	err := RegisterAll(c, Registration{Name: "empty"})
	assert.ErrorIs(t, err, ErrInvalidRegistrationSentinel)
}

func TestRegisterAll_NoRegistrations(t *testing.T) {
	assert.NoError(t, RegisterAll(New()))
}

func TestRegistration_Names(t *testing.T) {
	assert.Equal(t, "*minioc.testLogger", Scope[*testLogger]().Name)
	assert.Equal(t, "minioc.userStore", ScopeAs[userStore, *sqlUserStore]().Name)
	assert.Equal(t, "minioc.userStore", SingleAs[userStore, *memUserStore]().Name)
	assert.Equal(t, "*minioc.testDatabase", Single[*testDatabase]().Name)
}
