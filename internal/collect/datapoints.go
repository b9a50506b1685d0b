package collect

import "zoneminder-cli/pkg/models"

// Collector kinds, also the keys of per-target datapoint overrides.
const (
	KindDaemon  = "daemon"
	KindMonitor = "monitor"
	KindStorage = "storage"
)

// Datasource names prefixed to every metric name.
const (
	DatasourceDaemon  = "Daemon"
	DatasourceMonitor = "Monitor"
	DatasourceStorage = "Storage"
)

// DefaultDatapoints are the datapoints each kind emits unless the target
// overrides them.
var DefaultDatapoints = map[string][]models.DataPoint{
	KindDaemon: {
		{ID: "result"},
		{ID: "state"},
		{ID: "load-1"},
		{ID: "load-5"},
		{ID: "load-15"},
		{ID: "events"},
		{ID: "bandwidth", Type: models.FloatValue},
		{ID: "capturing", Type: models.FloatValue},
		{ID: "devshm"},
		{ID: "dbconn"},
		{ID: "dbmax"},
	},
	KindMonitor: {
		{ID: "online"},
		{ID: "status"},
		{ID: "daemon"},
		{ID: "enabled"},
		{ID: "events"},
		{ID: "CaptureFPS", Type: models.FloatValue},
		{ID: "AnalysisFPS", Type: models.FloatValue},
		{ID: "CaptureBandwidth"},
	},
	KindStorage: {
		{ID: "used"},
		{ID: "total"},
		{ID: "events"},
		{ID: "percent"},
	},
}
