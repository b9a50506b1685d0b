// Package version dissects ZoneMinder version strings and selects
// version-specific behavior.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Daemon is the zmdc/zmc release, e.g. 1.32.3.
type Daemon struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Rev   int `json:"rev"`
}

// API is the web API release, e.g. 2.0.
type API struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// Info is the dissected output of host/getVersion.json
type Info struct {
	Daemon Daemon `json:"daemon"`
	API    API    `json:"api"`
}

// Dissect splits both version strings into integer fields. Missing or
// unparsable fields are 0.
func Dissect(daemon, api string) Info {
	d := fields(daemon, 3)
	a := fields(api, 2)
	return Info{
		Daemon: Daemon{Major: d[0], Minor: d[1], Rev: d[2]},
		API:    API{Major: a[0], Minor: a[1]},
	}
}

func fields(s string, n int) []int {
	out := make([]int, n)
	for i, tok := range strings.Split(strings.TrimSpace(s), ".") {
		if i >= n {
			break
		}
		if v, err := strconv.Atoi(tok); err == nil {
			out[i] = v
		}
	}
	return out
}

func (d Daemon) String() string { return fmt.Sprintf("%d.%d.%d", d.Major, d.Minor, d.Rev) }
func (a API) String() string    { return fmt.Sprintf("%d.%d", a.Major, a.Minor) }

// Release returns the major.minor part of the daemon version.
func (d Daemon) Release() Release { return Release{Major: d.Major, Minor: d.Minor} }

// Release is a major.minor pair used as a feature gate key.
type Release struct {
	Major int
	Minor int
}

// Compare returns -1, 0 or 1.
func (r Release) Compare(o Release) int {
	switch {
	case r.Major != o.Major:
		if r.Major < o.Major {
			return -1
		}
		return 1
	case r.Minor < o.Minor:
		return -1
	case r.Minor > o.Minor:
		return 1
	}
	return 0
}

// AtLeast reports whether r is the same as or newer than o.
func (r Release) AtLeast(o Release) bool { return r.Compare(o) >= 0 }

func (r Release) String() string { return fmt.Sprintf("%d.%d", r.Major, r.Minor) }

// Gate binds a value to the first release it applies to.
type Gate[T any] struct {
	Since Release
	Value T
}

// Pick returns the value of the newest gate that r has reached. ok is false
// when r predates every gate.
func Pick[T any](gates []Gate[T], r Release) (value T, ok bool) {
	var best *Gate[T]
	for i := range gates {
		g := &gates[i]
		if !r.AtLeast(g.Since) {
			continue
		}
		if best == nil || g.Since.AtLeast(best.Since) {
			best = g
		}
	}
	if best == nil {
		return value, false
	}
	return best.Value, true
}

// Releases that changed the API surface we use.
var (
	// storage.json and Monitor_Status first appear in 1.32
	R1_32 = Release{Major: 1, Minor: 32}
	R1_30 = Release{Major: 1, Minor: 30}
	R0_0  = Release{}
)
