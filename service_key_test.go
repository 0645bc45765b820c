package minioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	primaryDB = NewServiceKey[*testDatabase]("primary")
	replicaDB = NewServiceKey[*testDatabase]("replica")
)

func TestServiceKey_BasicUsage(t *testing.T) {
	c := New()

	err := RegisterFactoryWithKey(c, primaryDB, func() (*testDatabase, error) {
		return &testDatabase{connStr: "postgres://primary"}, nil
	})
	require.NoError(t, err)

	db, err := ResolveWithKey(c, primaryDB)
	require.NoError(t, err)
	assert.Equal(t, "postgres://primary", db.connStr)
	assert.Equal(t, "primary", primaryDB.Name())
}

func TestServiceKey_DistinctKeys(t *testing.T) {
	c := New()
	require.NoError(t, c.DeclareConstructor(newTestDatabase))
	require.NoError(t, RegisterSingleWithKey(c, primaryDB))
	require.NoError(t, RegisterSingleWithKey(c, replicaDB, CreateImmediately()))

	assert.False(t, HasKey(c, primaryDB))
	assert.True(t, HasKey(c, replicaDB))

	primary := MustWithKey(c, primaryDB)
	replica := MustWithKey(c, replicaDB)

	assert.NotSame(t, primary, replica)
	assert.True(t, HasKey(c, primaryDB))
}

func TestServiceKey_FallsBackToUnkeyed(t *testing.T) {
	c := New()
	require.NoError(t, RegisterValue(c, &testDatabase{connStr: "postgres://default"}))

	db, err := ResolveWithKey(c, replicaDB)
	require.NoError(t, err)
	assert.Equal(t, "postgres://default", db.connStr)
}

func TestServiceKey_MustWithKeyPanics(t *testing.T) {
	c := New()

	assert.Panics(t, func() {
		MustWithKey(c, primaryDB)
	})
}

func TestServiceKey_Unregister(t *testing.T) {
	c := New()
	require.NoError(t, c.DeclareConstructor(newTestDatabase))
	require.NoError(t, RegisterSingleWithKey(c, primaryDB, CreateImmediately()))
	require.NoError(t, RegisterSingleWithKey(c, replicaDB, CreateImmediately()))

	UnregisterWithKey(c, primaryDB)

	assert.False(t, HasKey(c, primaryDB))
	assert.True(t, HasKey(c, replicaDB))

	_, err := ResolveWithKey(c, primaryDB)
	assert.ErrorIs(t, err, ErrServiceNotFoundSentinel)
}
