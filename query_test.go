package minioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContainer(t *testing.T) *Container {
	t.Helper()

	c := newUserStoreContainer(t)
	require.NoError(t, RegisterScope[*testLogger](c))
	require.NoError(t, RegisterSingleFactory(c, func() (*memUserStore, error) {
		return &memUserStore{}, nil
	}, WithKey("memory")))

	return c
}

func TestInspect(t *testing.T) {
	c := newQueryContainer(t)

	info := c.Inspect(TypeOf[userStore]())
	assert.Equal(t, "minioc.userStore", info.Name)
	assert.Equal(t, "*minioc.sqlUserStore", info.Implementation)
	assert.Equal(t, "singleton", info.Lifetime)
	assert.Equal(t, []string{""}, info.Keys)
	assert.Empty(t, info.Cached)

	_, err := GetInstance[userStore](c)
	require.NoError(t, err)

	info = c.Inspect(TypeOf[userStore]())
	assert.Equal(t, []string{""}, info.Cached)
}

func TestInspect_Keyed(t *testing.T) {
	c := newQueryContainer(t)

	info := c.Inspect(TypeOf[*memUserStore]())
	assert.Equal(t, []string{"memory"}, info.Keys)
	assert.Equal(t, "singleton", info.Lifetime)
}

func TestInspect_Unknown(t *testing.T) {
	c := New()

	info := c.Inspect(TypeOf[*testLogger]())
	assert.Equal(t, "*minioc.testLogger", info.Name)
	assert.Empty(t, info.Implementation)
	assert.Empty(t, info.Lifetime)
	assert.Empty(t, info.Keys)

	assert.Equal(t, "<nil>", c.Inspect(nil).Name)
}

func TestServices(t *testing.T) {
	c := newQueryContainer(t)

	assert.Equal(t, []string{
		"*minioc.memUserStore",
		"*minioc.testDatabase",
		"*minioc.testLogger",
		"minioc.userStore",
	}, c.Services())

	assert.Empty(t, New().Services())
}

func TestIsRegistered(t *testing.T) {
	c := newQueryContainer(t)

	assert.True(t, c.IsRegistered(TypeOf[userStore]()))
	assert.True(t, c.IsRegistered(TypeOf[*memUserStore]()))
	assert.False(t, c.IsRegistered(TypeOf[*sqlUserStore]()))

	UnRegister[*testLogger](c)
	assert.False(t, c.IsRegistered(TypeOf[*testLogger]()))
}

func TestQuery(t *testing.T) {
	c := newQueryContainer(t)

	_, err := GetInstance[*testDatabase](c)
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		assert.Len(t, Query(c, ServiceQuery{}), 4)
	})

	t.Run("by lifetime", func(t *testing.T) {
		transient := Query(c, ServiceQuery{Lifetime: "transient"})
		require.Len(t, transient, 1)
		assert.Equal(t, "*minioc.testLogger", transient[0].Name)
	})

	t.Run("cached", func(t *testing.T) {
		cached := true
		warm := Query(c, ServiceQuery{Cached: &cached})
		require.Len(t, warm, 1)
		assert.Equal(t, "*minioc.testDatabase", warm[0].Name)
	})

	t.Run("not cached singletons", func(t *testing.T) {
		cached := false
		cold := Query(c, ServiceQuery{Lifetime: "singleton", Cached: &cached})
		require.Len(t, cold, 2)
		assert.Equal(t, "*minioc.memUserStore", cold[0].Name)
		assert.Equal(t, "minioc.userStore", cold[1].Name)
	})
}

func TestFindByLifetime(t *testing.T) {
	c := newQueryContainer(t)

	assert.Len(t, FindByLifetime(c, Singleton), 3)
	assert.Len(t, FindByLifetime(c, Transient), 1)
}
