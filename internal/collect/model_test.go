package collect

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoneminder-cli/internal/config"
	"zoneminder-cli/internal/zmtest"
	"zoneminder-cli/pkg/models"
)

func TestConfigKey(t *testing.T) {
	tests := map[string]string{
		"ZM_LANG_DEFAULT":   "ZmLangDefault",
		"ZM_OPT_USE_AUTH":   "ZmOptUseAuth",
		"ZM_PATH_SWAP":      "ZmPathSwap",
		"ZM_OPT_X10":        "ZmOptX10",
		"zm_web_h264_codec": "ZmWebH264Codec",
	}
	for in, want := range tests {
		assert.Equal(t, want, ConfigKey(in), in)
	}
}

func relMap(t *testing.T, maps []models.RelMap, name string) models.RelMap {
	t.Helper()
	for _, m := range maps {
		if m.RelName == name {
			return m
		}
	}
	t.Fatalf("no relationship map %s", name)
	return models.RelMap{}
}

func object(t *testing.T, rm models.RelMap, id string) models.ObjectMap {
	t.Helper()
	for _, o := range rm.Objects {
		if o.ID == id {
			return o
		}
	}
	t.Fatalf("%s has no object %s", rm.RelName, id)
	return models.ObjectMap{}
}

func TestModel(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()

	res := Run(context.Background(), testTarget(srv), quiet, Model)
	require.NoError(t, res.Err)
	require.Len(t, res.Topology, 3)
	assert.Empty(t, res.Batch)

	daemon := relMap(t, res.Topology, RelDaemon)
	require.Len(t, daemon.Objects, 1)
	d := daemon.Objects[0].Attributes
	assert.Equal(t, srv.BaseURL(), d["url"])
	assert.Equal(t, "1.32.3", d["version"])
	assert.EqualValues(t, 1, d["daemonMajor"])
	assert.EqualValues(t, 32, d["daemonMinor"])
	assert.EqualValues(t, 3, d["daemonRev"])
	assert.EqualValues(t, 2, d["apiMajor"])
	assert.EqualValues(t, 0, d["apiMinor"])
	assert.Equal(t, "en_gb", d["ZmLangDefault"])
	assert.Equal(t, "/dev/shm", d["ZmPathSwap"])

	monitors := relMap(t, res.Topology, RelMonitors)
	assert.Equal(t, "ZMMonitor", monitors.ModName)
	assert.Len(t, monitors.Objects, 3)

	m1 := object(t, monitors, MonitorComponent("1"))
	assert.Equal(t, "Front Door", m1.Title)
	assert.Equal(t, "cam1.local", m1.Attributes["host"])
	assert.Equal(t, "Axis API v2", m1.Attributes["controlName"])
	assert.Equal(t, true, m1.Attributes["enabled"])
	assert.EqualValues(t, 1920, m1.Attributes["width"])
	assert.NotContains(t, m1.Attributes, "maxFps")

	m2 := object(t, monitors, MonitorComponent("2"))
	assert.Equal(t, "cam2.local", m2.Attributes["host"])
	assert.Equal(t, 5.0, m2.Attributes["maxFps"])
	assert.NotContains(t, m2.Attributes, "controlName")

	m3 := object(t, monitors, MonitorComponent("3"))
	assert.Equal(t, false, m3.Attributes["enabled"])
	assert.Equal(t, "/dev/video0", m3.Attributes["device"])

	storage := relMap(t, res.Topology, RelStorage)
	require.Len(t, storage.Objects, 3)
	assert.Equal(t, "Archive", storage.Objects[0].Title)
	assert.Equal(t, "Default", storage.Objects[1].Title)
	assert.Equal(t, "Offsite", storage.Objects[2].Title)
	assert.Equal(t, "s3fs", storage.Objects[2].Attributes["type"])
	assert.NotContains(t, storage.Objects[2].Attributes, "totalBytes")
	assert.Contains(t, storage.Objects[1].Attributes, "totalBytes")
}

func TestModelControlsUnavailable(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	srv.Fail["controls.json"] = http.StatusInternalServerError

	res := Run(context.Background(), testTarget(srv), quiet, Model)
	require.NoError(t, res.Err)

	m1 := object(t, relMap(t, res.Topology, RelMonitors), MonitorComponent("1"))
	assert.NotContains(t, m1.Attributes, "controlName")
}

func TestModelIgnoresMonitors(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()

	target := testTarget(srv)
	target.Ignore = config.Ignore{MonitorNames: []string{"^Test"}}
	res := Run(context.Background(), target, quiet, Model)
	require.NoError(t, res.Err)

	monitors := relMap(t, res.Topology, RelMonitors)
	assert.Len(t, monitors.Objects, 2)
	for _, o := range monitors.Objects {
		assert.NotEqual(t, MonitorComponent("3"), o.ID)
	}
}

func TestModelVersionFailure(t *testing.T) {
	srv := zmtest.NewServer()
	defer srv.Close()
	srv.Fail["host/getVersion.json"] = http.StatusInternalServerError

	res := Run(context.Background(), testTarget(srv), quiet, Model)
	require.ErrorIs(t, res.Err, ErrTransport)
	assert.Empty(t, res.Topology)
}
