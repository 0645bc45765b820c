package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/minioc"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) (*minioc.Container, *httptest.Server) {
	t.Helper()
	t.Setenv("GREETER_GREETING", "Hi")

	logger := zaptest.NewLogger(t)
	c, err := buildContainer(logger)
	require.NoError(t, err)

	cfg, err := minioc.GetInstance[*Config](c)
	require.NoError(t, err)

	srv := httptest.NewServer(newRouter(c, cfg, logger))
	t.Cleanup(srv.Close)

	return c, srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGreet(t *testing.T) {
	_, srv := newTestServer(t)

	status, body := get(t, srv.URL+"/greet/ada")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hi, Ada Lovelace!\n", body)

	status, _ = get(t, srv.URL+"/greet/nobody")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStaffUsesKeyedRepository(t *testing.T) {
	_, srv := newTestServer(t)

	status, body := get(t, srv.URL+"/staff/ops")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hi, Operations Team!\n", body)

	status, _ = get(t, srv.URL+"/staff/ada")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandlersAreTransient(t *testing.T) {
	c, _ := newTestServer(t)

	first, err := minioc.GetInstance[*GreetHandler](c)
	require.NoError(t, err)
	second, err := minioc.GetInstance[*GreetHandler](c)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Same(t, first.cfg, second.cfg)
}
