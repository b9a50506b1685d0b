package collect

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoneminder-cli/pkg/models"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		dp      models.DataPoint
		want    float64
		wantErr bool
	}{
		{"int string", "42", models.DataPoint{ID: "dbconn"}, 42, false},
		{"flex int", models.Flex("7"), models.DataPoint{ID: "state"}, 7, false},
		{"float truncated to int", 3.9, models.DataPoint{ID: "percent"}, 3, false},
		{"bool true", true, models.DataPoint{ID: "daemon"}, 1, false},
		{"bool false", false, models.DataPoint{ID: "daemon"}, 0, false},
		{"load defaults to float", models.Flex("0.52"), models.DataPoint{ID: "load-1"}, 0.52, false},
		{"declared float", "10.02", models.DataPoint{ID: "CaptureFPS", Type: models.FloatValue}, 10.02, false},
		{"declared int on load", "2", models.DataPoint{ID: "load-1", Type: models.IntValue}, 2, false},
		{"json number", json.Number("151"), models.DataPoint{ID: "dbmax"}, 151, false},
		{"int from float string", "1.5", models.DataPoint{ID: "events"}, 0, true},
		{"empty", "", models.DataPoint{ID: "events"}, 0, true},
		{"garbage float", "n/a", models.DataPoint{ID: "bandwidth", Type: models.FloatValue}, 0, true},
		{"nan", math.NaN(), models.DataPoint{ID: "events"}, 0, true},
		{"unsupported", []string{"1"}, models.DataPoint{ID: "events"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw, tt.dp)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalize(t *testing.T) {
	bag := StatBag{
		"result":  models.Flex("1"),
		"events":  int64(8),
		"load-5":  models.Flex("0.61"),
		"dbconn":  "broken",
		"unknown": 5,
	}
	points := []models.DataPoint{
		{ID: "result"},
		{ID: "events", RRDType: models.Derive},
		{ID: "load-5"},
		{ID: "dbconn"},
		{ID: "devshm"},
	}

	out := Normalize(bag, DatasourceDaemon, points, quiet)

	assert.Equal(t, map[string]models.Value{
		"Daemon_result": {Value: 1, Type: models.Gauge},
		"Daemon_events": {Value: 8, Type: models.Derive},
		"Daemon_load-5": {Value: 0.61, Type: models.Gauge},
	}, out)
}

func TestActiveState(t *testing.T) {
	id, ok := ActiveState([]models.State{
		{ID: "1", IsActive: "0"},
		{ID: "4", IsActive: "1"},
	})
	assert.True(t, ok)
	assert.Equal(t, "4", id)

	_, ok = ActiveState([]models.State{{ID: "1", IsActive: "0"}})
	assert.False(t, ok)
}

func TestDaemonAPIStats(t *testing.T) {
	bag := DaemonAPIStats(models.DaemonCheckResponse{}, nil, []models.Flex{"1"})
	assert.Equal(t, 0, bag["result"])
	assert.NotContains(t, bag, "state")
	assert.NotContains(t, bag, "load-1")
}

func TestDaemonConsoleStatsMissing(t *testing.T) {
	assert.Empty(t, DaemonConsoleStats("<html><body>nothing here</body></html>"))
}

func TestMonitorStatus(t *testing.T) {
	assert.Equal(t, 1, MonitorStatus(map[string]models.Flex{"Status": "Connected"}))
	assert.Equal(t, 0, MonitorStatus(map[string]models.Flex{"Status": "Signal"}))
	assert.Equal(t, 0, MonitorStatus(nil))
}

func TestMonitorHost(t *testing.T) {
	assert.Equal(t, "cam2.local", MonitorHost(models.Monitor{Host: "cam2.local", Path: "rtsp://other/x"}))
	assert.Equal(t, "cam1.local", MonitorHost(models.Monitor{Path: "rtsp://user:pw@cam1.local:554/stream"}))
	assert.Equal(t, "", MonitorHost(models.Monitor{Device: "/dev/video0"}))
}

func TestVolumeRecordStats(t *testing.T) {
	rec := VolumeRecord{
		Name:    "Default",
		Scraped: &models.Volume{Name: "Default", Used: 10, Total: 20, Events: 5, Percent: 50},
		API:     &models.Storage{ID: "0", Name: "Default", DiskSpace: "7"},
	}
	bag := rec.Stats()
	assert.Equal(t, 10.0, bag["used"])
	assert.Equal(t, 20.0, bag["total"])
	assert.Equal(t, int64(7), bag["events"])
	assert.Equal(t, 50, bag["percent"])
	assert.Equal(t, "0", rec.ID())

	// legacy console: percentage only
	legacy := VolumeRecord{Name: "Default", Scraped: &models.Volume{Name: "Default", Percent: 81}}
	assert.Equal(t, StatBag{"percent": 81}, legacy.Stats())
	assert.Equal(t, "", legacy.ID())
}
