package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoneminder-cli/internal/auth"
	"zoneminder-cli/internal/zmurl"
	"zoneminder-cli/pkg/models"
)

func readYAML(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

func TestTargetsList(t *testing.T) {
	v := readYAML(t, `
targets:
  - name: lab
    username: admin
    password: secret
    hostname: zm.lab.local
    port: 8443
    path: zoneminder
    login: web
    timeout: 5s
    ignore:
      monitor_ids: ["3"]
      monitor_names: ["^Test"]
      monitor_hosts: ["\\.guest\\.lan$"]
      storage_names: ["Offsite"]
    datapoints:
      daemon:
        - id: result
        - id: bandwidth
          type: float
          rrd_type: DERIVE
  - name: zm_office_example_com
    username: viewer
    password: pw
    ssl: false
    insecure: false
`)

	targets, err := Targets(v)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	lab := targets[0]
	assert.Equal(t, 5*time.Second, lab.RequestTimeout())
	mode, err := lab.LoginMode()
	require.NoError(t, err)
	assert.Equal(t, auth.ModeWeb, mode)
	assert.True(t, lab.InsecureTLS())

	url, err := zmurl.Build(lab.Endpoint())
	require.NoError(t, err)
	assert.Equal(t, "https://zm.lab.local:8443/zoneminder/", url)

	require.Len(t, lab.Datapoints["daemon"], 2)
	assert.Equal(t, models.DataPoint{ID: "bandwidth", Type: models.FloatValue, RRDType: models.Derive}, lab.Datapoints["daemon"][1])

	mf, err := lab.MonitorFilter()
	require.NoError(t, err)
	assert.True(t, mf.Skip("3", "Garage", ""))
	assert.True(t, mf.Skip("4", "Test Cam", ""))
	assert.True(t, mf.Skip("5", "Porch", "cam5.guest.lan"))
	assert.False(t, mf.Skip("1", "Front Door", "cam1.local"))

	sf, err := lab.StorageFilter()
	require.NoError(t, err)
	assert.True(t, sf.Skip("2", "Offsite", ""))
	assert.False(t, sf.Skip("0", "Default", ""))

	office := targets[1]
	assert.Equal(t, DefaultTimeout, office.RequestTimeout())
	assert.False(t, office.InsecureTLS())
	url, err = zmurl.Build(office.Endpoint())
	require.NoError(t, err)
	assert.Equal(t, "http://zm.office.example.com/zm/", url)
}

func TestTargetsSingle(t *testing.T) {
	v := readYAML(t, `
hostname: 10.0.0.5
username: admin
password: secret
ssl: false
port: 80
`)
	targets, err := Targets(v)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "10.0.0.5", targets[0].Name)

	url, err := zmurl.Build(targets[0].Endpoint())
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:80/zm/", url)
}

func TestTargetsSingleKeepsIgnoreAndDatapoints(t *testing.T) {
	v := readYAML(t, `
hostname: 10.0.0.5
username: admin
password: secret
insecure: false
ignore:
  monitor_ids: ["7"]
  storage_names: ["^Tmp"]
datapoints:
  daemon:
    - id: events
      rrd_type: DERIVE
`)
	targets, err := Targets(v)
	require.NoError(t, err)
	require.Len(t, targets, 1)

	tg := targets[0]
	assert.Equal(t, []string{"7"}, tg.Ignore.MonitorIDs)
	assert.Equal(t, []string{"^Tmp"}, tg.Ignore.StorageNames)
	assert.Equal(t, []models.DataPoint{{ID: "events", RRDType: models.Derive}}, tg.Datapoints["daemon"])
	assert.False(t, tg.InsecureTLS())

	f, err := tg.MonitorFilter()
	require.NoError(t, err)
	assert.True(t, f.Skip("7", "", ""))
}

func TestTargetsOverrideURL(t *testing.T) {
	v := readYAML(t, `
targets:
  - url: https://nvr.example.com:9443/zm/
    username: admin
    password: secret
`)
	targets, err := Targets(v)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "https://nvr.example.com:9443/zm/", targets[0].Name)

	url, err := zmurl.Build(targets[0].Endpoint())
	require.NoError(t, err)
	assert.Equal(t, "https://nvr.example.com:9443/zm/", url)
}

func TestTargetsErrors(t *testing.T) {
	_, err := Targets(readYAML(t, `
targets:
  - name: a
  - name: a
`))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Targets(readYAML(t, `
targets:
  - username: nobody
`))
	assert.Error(t, err)

	targets, err := Targets(readYAML(t, `other: 1`))
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestBadIgnorePattern(t *testing.T) {
	tgt := Target{Ignore: Ignore{MonitorNames: []string{"("}}}
	_, err := tgt.MonitorFilter()
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	all := []Target{{Name: "a"}, {Name: "b"}}

	got, err := Select(all, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Select(all, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got[0].Name)

	_, err = Select(all, "c")
	assert.Error(t, err)
}
