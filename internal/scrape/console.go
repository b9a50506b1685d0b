// Package scrape extracts status fields from the ZoneMinder console page.
//
// Every extractor is independent and best-effort: when its pattern is absent
// it returns ok=false instead of an error, since the markup shifts between
// releases.
package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

// tags skips inline markup between a label and its value
const tags = `(?:<[^>]*>\s*)*`

var (
	bandwidthColRE = regexp.MustCompile(`<td class="colFunction">\s*(?:Total:?\s*)?(\d+(?:\.\d+)?)\s*([KkMGT]?)B/s`)
	bandwidthRE    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([KkMGT]?)B/s`)
	capturingRE    = regexp.MustCompile(`Capturing:?\s*` + tags + `(\d+(?:\.\d+)?)\s*%`)
	dbRE           = regexp.MustCompile(`DB:?\s*` + tags + `(\d+)\s*/\s*(\d+)`)
	shmRE          = regexp.MustCompile(`/\w+/shm:?\s*` + tags + `(\d+)\s*%?`)
	diskRE         = regexp.MustCompile(`(?:Disk|Storage):?\s*` + tags + `(\d+)\s*%`)
)

// decimal multipliers used for rates
var rateUnits = map[string]float64{
	"":  1,
	"K": 1e3,
	"k": 1e3,
	"M": 1e6,
	"G": 1e9,
	"T": 1e12,
}

// Bandwidth returns the total capture bandwidth in bytes per second.
func Bandwidth(html string) (float64, bool) {
	m := bandwidthColRE.FindStringSubmatch(html)
	if m == nil {
		m = bandwidthRE.FindStringSubmatch(html)
	}
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v * rateUnits[m[2]], true
}

// Capturing returns the system capturing percentage.
func Capturing(html string) (float64, bool) {
	m := capturingRE.FindStringSubmatch(html)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DBConnections returns the used and maximum database connection counts.
func DBConnections(html string) (used, limit int, ok bool) {
	m := dbRE.FindStringSubmatch(html)
	if m == nil {
		return 0, 0, false
	}
	used, err1 := strconv.Atoi(m[1])
	limit, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return used, limit, true
}

// SharedMemory returns the /dev/shm (or /run/shm) utilization percentage.
func SharedMemory(html string) (int, bool) {
	return percent(shmRE, html)
}

// DiskPercent returns the single disk utilization percentage shown by
// releases that predate per-volume storage.
func DiskPercent(html string) (int, bool) {
	return percent(diskRE, html)
}

func percent(re *regexp.Regexp, html string) (int, bool) {
	m := re.FindStringSubmatch(html)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Monitor online states
const (
	MonitorError   = 0
	MonitorOK      = 1
	MonitorUnknown = 2
)

type consoleMarker struct {
	prefix string
	// lines between the marker and the status cell
	offset int
}

// Checked in this order; the first prefix present in the page wins.
var monitorMarkers = []consoleMarker{
	{prefix: "zmWatch", offset: 2},     // 1.30
	{prefix: "zmMonitor", offset: 0},   // 1.34
	{prefix: "monitor_id-", offset: 9}, // 1.32
}

var onlineRE = regexp.MustCompile(`<td class="colSource">.*<span class="(\w+)Text">`)

// MonitorOnline returns the console state of one monitor: MonitorError,
// MonitorOK or MonitorUnknown for any other status class.
func MonitorOnline(html, monitorID string) (int, bool) {
	if monitorID == "" {
		return 0, false
	}
	var marker *consoleMarker
	for i := range monitorMarkers {
		if strings.Contains(html, monitorMarkers[i].prefix) {
			marker = &monitorMarkers[i]
			break
		}
	}
	if marker == nil {
		return 0, false
	}

	idRE := regexp.MustCompile(regexp.QuoteMeta(marker.prefix+monitorID) + `(?:\D|$)`)
	lines := strings.Split(html, "\n")
	for i, line := range lines {
		if !idRE.MatchString(line) {
			continue
		}
		j := i + marker.offset
		if j >= len(lines) {
			return 0, false
		}
		m := onlineRE.FindStringSubmatch(lines[j])
		if m == nil {
			return 0, false
		}
		switch m[1] {
		case "error":
			return MonitorError, true
		case "info":
			return MonitorOK, true
		default:
			return MonitorUnknown, true
		}
	}
	return 0, false
}
