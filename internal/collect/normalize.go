package collect

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"zoneminder-cli/pkg/models"
)

// StatBag holds the raw stats of one component, keyed by stat name. Values
// are whatever the source produced: numbers, strings, Flex or bools.
type StatBag map[string]any

// Merge copies src into b; keys already present are overwritten.
func (b StatBag) Merge(src map[string]any) {
	for k, v := range src {
		b[k] = v
	}
}

// Normalize converts the stats named by points into metric values named
// <datasource>_<datapoint>. Stats that are missing or fail to coerce are
// left out.
func Normalize(bag StatBag, datasource string, points []models.DataPoint, log *slog.Logger) map[string]models.Value {
	out := map[string]models.Value{}
	for _, dp := range points {
		raw, ok := bag[dp.ID]
		if !ok {
			continue
		}
		v, err := Coerce(raw, dp)
		if err != nil {
			if log != nil {
				log.Debug("dropping datapoint", "datapoint", dp.ID, "value", raw, "error", err)
			}
			continue
		}
		rrd := dp.RRDType
		if rrd == "" {
			rrd = models.Gauge
		}
		out[datasource+"_"+dp.ID] = models.Value{Value: v, Type: rrd}
	}
	return out
}

// Coerce converts raw to the type the datapoint declares. Undeclared
// datapoints are floats when their ID starts with "load-" and integers
// otherwise.
func Coerce(raw any, dp models.DataPoint) (float64, error) {
	asFloat := dp.Type == models.FloatValue ||
		(dp.Type == models.AutoValue && strings.HasPrefix(dp.ID, "load-"))
	if asFloat {
		return toFloat(raw)
	}
	n, err := toInt(raw)
	return float64(n), err
}

func toInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v is not finite", ErrParse, v)
		}
		return int64(v), nil
	case float32:
		return toInt(float64(v))
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return parseInt(string(v))
	case models.Flex:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	}
	return 0, fmt.Errorf("%w: cannot use %T as integer", ErrParse, raw)
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrParse, s)
	}
	return n, nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return parseFloat(string(v))
	case models.Flex:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	}
	return 0, fmt.Errorf("%w: cannot use %T as float", ErrParse, raw)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, s)
	}
	return f, nil
}

// ActiveState returns the ID of the run state flagged IsActive.
func ActiveState(states []models.State) (string, bool) {
	for _, s := range states {
		if n, err := s.IsActive.Int(); err == nil && n == 1 {
			return s.ID.String(), true
		}
	}
	return "", false
}

// ConnectedStatus is the Monitor_Status value of a capturing monitor.
const ConnectedStatus = "Connected"

// MonitorStatus is 1 for a connected monitor and 0 otherwise.
func MonitorStatus(status map[string]models.Flex) int {
	if status["Status"].String() == ConnectedStatus {
		return 1
	}
	return 0
}
