package collect

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"zoneminder-cli/internal/version"
	"zoneminder-cli/pkg/models"
)

// Relationship names of the topology maps.
const (
	RelDaemon   = "zoneMinder"
	RelMonitors = "zmMonitors"
	RelStorage  = "zmStorage"
)

// ConfigKey converts a ZM_* option name to the attribute name used on the
// daemon object: each word capitalized, underscores removed
// (ZM_LANG_DEFAULT becomes ZmLangDefault).
func ConfigKey(name string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		if r != '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DaemonObject models the server itself.
func DaemonObject(baseURL string, v models.VersionResponse, configs []models.Config) models.ObjectMap {
	info := version.Dissect(v.Version, v.APIVersion)
	attrs := map[string]any{
		"url":         baseURL,
		"version":     v.Version,
		"apiversion":  v.APIVersion,
		"daemonMajor": info.Daemon.Major,
		"daemonMinor": info.Daemon.Minor,
		"daemonRev":   info.Daemon.Rev,
		"apiMajor":    info.API.Major,
		"apiMinor":    info.API.Minor,
	}
	for _, cfg := range configs {
		if name := cfg.Name.String(); name != "" {
			attrs[ConfigKey(name)] = cfg.Value.String()
		}
	}
	return models.ObjectMap{
		ID:         DaemonComponent,
		Title:      baseURL,
		Attributes: attrs,
	}
}

// MonitorObject models one monitor. controls maps control ID to name.
func MonitorObject(m models.Monitor, controls map[string]string) models.ObjectMap {
	attrs := map[string]any{
		"monitorId":    m.ID.String(),
		"enabled":      m.Enabled.Bool(),
		"controllable": m.Controllable.Bool(),
	}
	for key, v := range map[string]models.Flex{
		"function":  m.Function,
		"type":      m.Type,
		"protocol":  m.Protocol,
		"method":    m.Method,
		"path":      m.Path,
		"device":    m.Device,
		"port":      m.Port,
		"serverId":  m.ServerID,
		"storageId": m.StorageID,
	} {
		if v != "" {
			attrs[key] = v.String()
		}
	}
	if host := MonitorHost(m); host != "" {
		attrs["host"] = host
	}
	for key, v := range map[string]models.Flex{
		"width":   m.Width,
		"height":  m.Height,
		"colours": m.Colours,
	} {
		if n, err := v.Int(); err == nil {
			attrs[key] = n
		}
	}
	if fps, err := m.MaxFPS.Float(); err == nil {
		attrs["maxFps"] = fps
	}
	if m.Controllable.Bool() {
		if name, ok := controls[m.ControlID.String()]; ok {
			attrs["controlName"] = name
		}
	}

	title := m.Name.String()
	if title == "" {
		title = fmt.Sprintf("Monitor %s", m.ID)
	}
	return models.ObjectMap{
		ID:         MonitorComponent(m.ID.String()),
		Title:      title,
		Attributes: attrs,
	}
}

// StorageObject models one storage volume.
func StorageObject(rec VolumeRecord) models.ObjectMap {
	attrs := map[string]any{}
	if v := rec.Scraped; v != nil && v.Total > 0 {
		attrs["totalBytes"] = v.Total
	}
	if s := rec.API; s != nil {
		for key, v := range map[string]models.Flex{
			"storageId": s.ID,
			"path":      s.Path,
			"type":      s.Type,
			"scheme":    s.Scheme,
			"serverId":  s.ServerID,
		} {
			if v != "" {
				attrs[key] = v.String()
			}
		}
	}
	return models.ObjectMap{
		ID:         rec.ComponentID(),
		Title:      rec.Name,
		Attributes: attrs,
	}
}

// Model collects the topology of the server: the daemon with its versions
// and options, the monitors and the storage volumes.
func Model(ctx context.Context, c *Cycle) error {
	v, err := c.Version(ctx)
	if err != nil {
		return err
	}
	configs, err := c.Client.Configs(ctx)
	if err != nil {
		return err
	}
	monitors, err := c.Client.Monitors(ctx)
	if err != nil {
		return err
	}

	controls := map[string]string{}
	if list, err := c.Client.Controls(ctx); err != nil {
		c.Log.Warn("failed to get controls", "error", fmt.Errorf("%w: %v", ErrPartialData, err))
	} else {
		for _, ctl := range list {
			controls[ctl.ID.String()] = ctl.Name.String()
		}
	}

	volumes, err := c.Volumes(ctx)
	if err != nil {
		return err
	}

	daemon := models.RelMap{RelName: RelDaemon, ModName: "ZoneMinder"}
	daemon.Objects = append(daemon.Objects, DaemonObject(c.BaseURL, v, configs))

	mons := models.RelMap{RelName: RelMonitors, ModName: "ZMMonitor", Objects: []models.ObjectMap{}}
	for _, entry := range monitors {
		m := entry.Monitor
		if c.monitorFilter.Skip(m.ID.String(), m.Name.String(), MonitorHost(m)) {
			c.Log.Debug("ignoring monitor", "monitor", m.ID.String(), "name", m.Name.String())
			continue
		}
		mons.Objects = append(mons.Objects, MonitorObject(m, controls))
	}

	stores := models.RelMap{RelName: RelStorage, ModName: "ZMStorage", Objects: []models.ObjectMap{}}
	for _, rec := range volumes {
		stores.Objects = append(stores.Objects, StorageObject(rec))
	}

	c.Log.Debug("ZoneMinder relmaps", "monitors", len(mons.Objects), "volumes", len(stores.Objects))
	c.Topology = append(c.Topology, daemon, mons, stores)
	return nil
}
