package zmtest

import (
	"fmt"
	"strings"
)

// EventsPath is the unescaped console events path.
const EventsPath = "events/consoleEvents/300 second.json"

// DefaultAPI returns the API bodies of a 1.32.3 server with three monitors
// (1 connected, 2 down, 3 disabled) and two storage areas.
func DefaultAPI() map[string]string {
	return map[string]string{
		"host/daemonCheck.json": `{"result":1}`,
		"host/getLoad.json":     `{"load":[0.52,0.61,0.7]}`,
		"host/getVersion.json":  `{"version":"1.32.3","apiversion":"2.0"}`,
		"states.json": `{"states":[
			{"State":{"Id":"1","Name":"default","Definition":"","IsActive":"0"}},
			{"State":{"Id":"2","Name":"night","Definition":"1:Modect:1","IsActive":"1"}}]}`,
		EventsPath: `{"results":{"1":"3","2":"5"}}`,
		"configs.json": `{"configs":[
			{"Config":{"Id":"1","Name":"ZM_LANG_DEFAULT","Value":"en_gb","Type":"string","Category":"system"}},
			{"Config":{"Id":"2","Name":"ZM_OPT_USE_AUTH","Value":"1","Type":"boolean","Category":"system"}},
			{"Config":{"Id":"3","Name":"ZM_PATH_SWAP","Value":"/dev/shm","Type":"string","Category":"paths"}}]}`,
		"monitors.json": `{"monitors":[
			{"Monitor":` + monitor1 + `},
			{"Monitor":` + monitor2 + `},
			{"Monitor":` + monitor3 + `}]}`,
		"monitors/1.json": `{"monitor":{"Monitor":` + monitor1 + `,"Monitor_Status":{"MonitorId":"1","Status":"Connected","CaptureFPS":"10.02","AnalysisFPS":"9.98","CaptureBandwidth":"125000"}}}`,
		"monitors/2.json": `{"monitor":{"Monitor":` + monitor2 + `,"Monitor_Status":{"MonitorId":"2","Status":"NotRunning","CaptureFPS":"0.00","AnalysisFPS":"0.00","CaptureBandwidth":"0"}}}`,
		"monitors/3.json": `{"monitor":{"Monitor":` + monitor3 + `,"Monitor_Status":{"MonitorId":"3","Status":"NotRunning"}}}`,
		"monitors/daemonStatus/id:1/daemon:zmc.json": `{"status":true,"statustext":"'zmc -m 1' running since 19/10/26 08:00:00, 1 restart, pid = 1234"}`,
		"monitors/daemonStatus/id:2/daemon:zmc.json": `{"status":false,"statustext":"'zmc -m 2' stopped at 19/10/26 08:00:00"}`,
		"monitors/daemonStatus/id:3/daemon:zmc.json": `{"status":false,"statustext":"'zmc -m 3' not running"}`,
		"controls.json": `{"controls":[{"Control":{"Id":"3","Name":"Axis API v2","Type":"Remote","Protocol":"AxisV2"}}]}`,
		"storage.json": `{"storage":[
			{"Storage":{"Id":"0","Name":"Default","Path":"/var/cache/zoneminder/events","Type":"local","Scheme":"Medium","DiskSpace":"2858730232217","ServerId":null}},
			{"Storage":{"Id":"1","Name":"Archive","Path":"/mnt/archive","Type":"local","Scheme":"Deep","DiskSpace":"161598144102","ServerId":null}},
			{"Storage":{"Id":"2","Name":"Offsite","Path":"/mnt/s3","Type":"s3fs","Scheme":"Medium","DiskSpace":null,"ServerId":null}}]}`,
	}
}

// CollidingStorage lists two API-only volumes whose names map to the same
// component ID.
const CollidingStorage = `{"storage":[
	{"Storage":{"Id":"5","Name":"Off site","Path":"/mnt/a","Type":"local","DiskSpace":"100"}},
	{"Storage":{"Id":"6","Name":"Off_site","Path":"/mnt/b","Type":"local","DiskSpace":"200"}}]}`

const (
	monitor1 = `{"Id":"1","Name":"Front Door","ServerId":"0","StorageId":"0","Type":"Ffmpeg","Function":"Modect","Enabled":"1","Protocol":"","Method":"","Host":"","Port":"","Path":"rtsp://cam1.local/stream","Device":"","Width":"1920","Height":"1080","Colours":"4","MaxFPS":"","Controllable":"1","ControlId":"3"}`
	monitor2 = `{"Id":"2","Name":"Back Yard","ServerId":"0","StorageId":"1","Type":"Remote","Function":"Monitor","Enabled":"1","Protocol":"http","Method":"simple","Host":"cam2.local","Port":"80","Path":"/video.mjpg","Device":"","Width":"1280","Height":"720","Colours":"4","MaxFPS":"5.00","Controllable":"0","ControlId":null}`
	monitor3 = `{"Id":"3","Name":"Test Cam","ServerId":"0","StorageId":"0","Type":"Local","Function":"None","Enabled":"0","Protocol":"","Method":"v4l2","Host":"","Port":"","Path":"","Device":"/dev/video0","Width":"640","Height":"480","Colours":"3","MaxFPS":"","Controllable":"0","ControlId":"0"}`
)

// Console132 is a console page in the 1.32 layout: monitor rows start with
// a monitor_id- marker and carry the source cell nine lines below.
var Console132 = consoleHeader + monitorRow("1", "info") + monitorRow("2", "error") + consoleFooter

const consoleHeader = `<!DOCTYPE html>
<html>
<body>
<div class="navbar-right">
<ul class="nav">
<li>Load: 0.52</li>
<li>DB:4/151</li>
<li>Storage: <span class="" title="2.6TB of 3.58TB 2.6TB used by events">Default: 73%</span>, <span class="" title="150.5GB of 1TB 150.5GB used by events">Archive: 15%</span></li>
<li>/dev/shm: 12%</li>
<li>Capturing: 87.5%</li>
</ul>
</div>
<table id="consoleTable">
<tbody>
`

const consoleFooter = `</tbody>
<tfoot>
<tr><td class="colFunction">12.4MB/s</td></tr>
</tfoot>
</table>
</body>
</html>
`

func monitorRow(id, class string) string {
	lines := []string{fmt.Sprintf(`<tr id="monitor_id-%s" title="Monitor %s">`, id, id)}
	for i := 0; i < 8; i++ {
		lines = append(lines, `<td class="colDot"></td>`)
	}
	lines = append(lines,
		fmt.Sprintf(`<td class="colSource"><a href="?view=monitor&amp;mid=%s"><span class="%sText">rtsp</span></a></td>`, id, class),
		`</tr>`,
		``,
	)
	return strings.Join(lines, "\n")
}
