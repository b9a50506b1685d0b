package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoneminder-cli/internal/auth"
	"zoneminder-cli/internal/zmtest"
)

func newTestClient(srv *zmtest.Server, mode auth.Mode) *ZMClient {
	return New(ClientConfig{
		BaseURL:  srv.BaseURL(),
		Username: "admin",
		Password: "secret",
		Login:    mode,
	})
}

func TestLoginAPI(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()

	c := newTestClient(srv, auth.ModeAPI)
	require.NoError(t, c.Login(context.Background()))
	assert.True(t, c.LoggedIn())
	assert.True(t, srv.Requested("api/host/login.json"))

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.32.3", v.Version)
	assert.Equal(t, "2.0", v.APIVersion)

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.LoggedIn())
	assert.Equal(t, 1, srv.Logouts())
}

func TestLoginWeb(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()

	c := newTestClient(srv, auth.ModeWeb)
	require.NoError(t, c.Login(context.Background()))

	html, err := c.Console(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "monitor_id-1")

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, 1, srv.Logouts())
}

func TestLoginRejected(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	srv.Password = "other"

	for _, mode := range []auth.Mode{auth.ModeAPI, auth.ModeWeb} {
		c := newTestClient(srv, mode)
		err := c.Login(context.Background())
		assert.ErrorIs(t, err, ErrAuthentication, string(mode))
		assert.False(t, c.LoggedIn())
	}
}

func TestLoginWithoutCookie(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	srv.NoCookie = true

	c := newTestClient(srv, auth.ModeAPI)
	err := c.Login(context.Background())
	require.ErrorIs(t, err, ErrAuthentication)
	assert.Contains(t, err.Error(), "no session cookie")
}

func TestLoginUnreachable(t *testing.T) {
	srv := zmtest.NewServer()
	base := srv.BaseURL()
	srv.Close()

	c := New(ClientConfig{BaseURL: base, Username: "admin", Password: "secret"})
	assert.ErrorIs(t, c.Login(context.Background()), ErrTransport)
}

func TestGetJSONRequiresLogin(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()

	c := newTestClient(srv, auth.ModeAPI)
	_, err := c.DaemonCheck(context.Background())
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Empty(t, srv.Requests())
}

func TestGetJSONFailures(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	srv.Fail["host/getLoad.json"] = http.StatusInternalServerError
	srv.API["states.json"] = `{"states": [`

	c := newTestClient(srv, auth.ModeAPI)
	require.NoError(t, c.Login(context.Background()))

	_, err := c.Load(context.Background())
	assert.ErrorIs(t, err, ErrTransport)

	_, err = c.States(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "decode")

	_, err = c.Storage(context.Background())
	assert.NoError(t, err)
}

func TestEndpoints(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	ctx := context.Background()

	c := newTestClient(srv, auth.ModeAPI)
	require.NoError(t, c.Login(ctx))
	defer c.Logout(ctx)

	check, err := c.DaemonCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", check.Result.String())

	load, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, load, 3)
	assert.Equal(t, "0.52", load[0].String())

	states, err := c.States(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.True(t, states[1].IsActive.Bool())

	events, err := c.ConsoleEvents(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 8, events.Total())
	assert.True(t, srv.Requested("api/"+zmtest.EventsPath))

	monitors, err := c.Monitors(ctx)
	require.NoError(t, err)
	assert.Len(t, monitors, 3)

	mon, err := c.Monitor(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Front Door", mon.Monitor.Name.String())
	assert.Equal(t, "Connected", mon.Status["Status"].String())

	ds, err := c.MonitorDaemonStatus(ctx, "2", "zmc")
	require.NoError(t, err)
	assert.False(t, ds.Status.Bool())

	controls, err := c.Controls(ctx)
	require.NoError(t, err)
	require.Len(t, controls, 1)
	assert.Equal(t, "Axis API v2", controls[0].Name.String())

	configs, err := c.Configs(ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 3)

	storage, err := c.Storage(ctx)
	require.NoError(t, err)
	require.Len(t, storage, 3)
	assert.Equal(t, "", storage[2].DiskSpace.String())
}

func TestEmptyEventList(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	srv.API[zmtest.EventsPath] = `{"results":[]}`

	c := newTestClient(srv, auth.ModeAPI)
	require.NoError(t, c.Login(context.Background()))

	events, err := c.ConsoleEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Zero(t, events.Total())
}

func TestCookiesNotShared(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()

	first := newTestClient(srv, auth.ModeAPI)
	require.NoError(t, first.Login(context.Background()))

	second := newTestClient(srv, auth.ModeAPI)
	_, err := second.DaemonCheck(context.Background())
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.False(t, second.hasSession())
}
