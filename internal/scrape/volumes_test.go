package scrape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		number, unit string
		want         float64
		ok           bool
	}{
		{"512", "B", 512, true},
		{"1", "KB", 1024, true},
		{"1.5", "MB", 1.5 * 1024 * 1024, true},
		{"2", "GB", 2 * math.Pow(1024, 3), true},
		{"3.37", "TB", 3.37 * math.Pow(1024, 4), true},
		{"1", "YB", math.Pow(1024, 8), true},
		{"1", "XB", 0, false},
		{"abc", "MB", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSize(tt.number, tt.unit)
		assert.Equal(t, tt.ok, ok, tt.number+tt.unit)
		assert.Equal(t, tt.want, got, tt.number+tt.unit)
	}
}

func TestVolumes(t *testing.T) {
	html := `<li>Storage:
<span class="" title="1.2TB of 3.58TB 900GB used by events">Default: 34%</span>,
<span class="" title="200GB of 1TB 150.5GB used by events">Archive: 20%</span></li>`

	vols := Volumes(html)
	require.Len(t, vols, 2)

	def := vols["Default"]
	assert.Equal(t, 1.2*math.Pow(1024, 4), def.Used)
	assert.Equal(t, 3.58*math.Pow(1024, 4), def.Total)
	assert.Equal(t, 900*math.Pow(1024, 3), def.Events)
	assert.Equal(t, 34, def.Percent)

	arch := vols["Archive"]
	assert.Equal(t, "Archive", arch.Name)
	assert.Equal(t, 150.5*math.Pow(1024, 3), arch.Events)
	assert.Equal(t, 20, arch.Percent)
}

func TestVolumesDefaultFold(t *testing.T) {
	html := `<span class="" title="3.37TB of 3.58TB 2.6TB used by events...>Default: 94%</span>
<span class="" title="3.37TB of 3.58TB 0B used by events">Media: 94%</span>`

	vols := Volumes(html)
	require.Len(t, vols, 1)
	assert.NotContains(t, vols, "Default")

	media := vols["Media"]
	assert.Equal(t, 2.6*math.Pow(1024, 4), media.Events)
	assert.Equal(t, 3.37*math.Pow(1024, 4), media.Used)
	assert.Equal(t, 94, media.Percent)
}

func TestVolumesNoFoldWhenSizesDiffer(t *testing.T) {
	html := `<span title="3.37TB of 3.58TB 2.6TB used by events">Default: 94%</span>
<span title="1TB of 2TB 0B used by events">Media: 50%</span>`

	vols := Volumes(html)
	assert.Len(t, vols, 2)
	assert.Zero(t, vols["Media"].Events)
}

func TestVolumesLegacy(t *testing.T) {
	vols := Volumes(`Load: 0.1 - Disk: 45% - /dev/shm: 3%`)
	require.Len(t, vols, 1)
	assert.Equal(t, 45, vols[DefaultVolume].Percent)
	assert.Equal(t, DefaultVolume, vols[DefaultVolume].Name)
}

func TestVolumesAbsent(t *testing.T) {
	assert.Empty(t, Volumes("<html></html>"))
}
