package scrape

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"zoneminder-cli/pkg/models"
)

// DefaultVolume is the name ZoneMinder gives the storage area it creates on
// install. Some releases list it a second time under its configured name.
const DefaultVolume = "Default"

const size = `(\d+(?:\.\d+)?)\s*([KMGTPEZY]?B)`

// e.g. title="3.37TB of 3.58TB 2.6TB used by events">Default: 94%
var volumeRE = regexp.MustCompile(size + ` of ` + size + `\s+` + size + ` used by events[^>]*>\s*([^:<]+?):\s*(\d+)%`)

// binary multipliers by prefix position
const sizePrefixes = "KMGTPEZY"

// ParseSize converts a number and a unit such as "TB" to bytes using powers
// of 1024.
func ParseSize(number, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}
	unit = strings.ToUpper(strings.TrimSpace(unit))
	if unit == "B" {
		return v, true
	}
	if len(unit) != 2 || unit[1] != 'B' {
		return 0, false
	}
	idx := strings.IndexByte(sizePrefixes, unit[0])
	if idx < 0 {
		return 0, false
	}
	return v * math.Pow(1024, float64(idx+1)), true
}

// Volumes returns the storage volumes listed in the console header, keyed by
// name. When no per-volume entry exists but the legacy disk percentage does,
// a single Default volume carrying that percentage is returned. The map is
// empty when neither is present.
func Volumes(html string) map[string]models.Volume {
	volumes := map[string]models.Volume{}

	for _, m := range volumeRE.FindAllStringSubmatch(html, -1) {
		used, ok1 := ParseSize(m[1], m[2])
		total, ok2 := ParseSize(m[3], m[4])
		events, ok3 := ParseSize(m[5], m[6])
		pct, err := strconv.Atoi(m[8])
		if !ok1 || !ok2 || !ok3 || err != nil {
			continue
		}
		name := strings.TrimSpace(m[7])
		volumes[name] = models.Volume{
			Name:    name,
			Used:    used,
			Total:   total,
			Events:  events,
			Percent: pct,
		}
	}

	if len(volumes) == 0 {
		if pct, ok := DiskPercent(html); ok {
			volumes[DefaultVolume] = models.Volume{Name: DefaultVolume, Percent: pct}
		}
		return volumes
	}

	foldDefault(volumes)
	return volumes
}

// foldDefault merges the Default entry into a named volume reporting the
// same used and total sizes, since both describe the same filesystem.
func foldDefault(volumes map[string]models.Volume) {
	def, ok := volumes[DefaultVolume]
	if !ok {
		return
	}
	for name, vol := range volumes {
		if name == DefaultVolume || vol.Used != def.Used || vol.Total != def.Total {
			continue
		}
		if vol.Events == 0 {
			vol.Events = def.Events
		}
		volumes[name] = vol
		delete(volumes, DefaultVolume)
		return
	}
}
