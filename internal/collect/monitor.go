package collect

import (
	"context"
	"net/url"

	"zoneminder-cli/internal/scrape"
	"zoneminder-cli/pkg/models"
)

// MonitorAPIStats derives the stats of one monitor from its API entry and
// capture daemon status.
func MonitorAPIStats(entry models.MonitorEntry, zmc models.DaemonStatusResponse) StatBag {
	bag := StatBag{}
	for k, v := range entry.Status {
		bag[k] = v
	}
	bag["status"] = MonitorStatus(entry.Status)
	bag["daemon"] = zmc.Status.Bool()
	if entry.Monitor.Enabled != "" {
		bag["enabled"] = entry.Monitor.Enabled
	}
	return bag
}

// MonitorHost returns the network host of a monitor: the Host field of
// remote monitors, otherwise the host of a URL-shaped Path.
func MonitorHost(m models.Monitor) string {
	if h := m.Host.String(); h != "" {
		return h
	}
	if u, err := url.Parse(m.Path.String()); err == nil {
		return u.Hostname()
	}
	return ""
}

// monitorIDs returns the configured monitor IDs, or every monitor the API
// lists when none are configured.
func (c *Cycle) monitorIDs(ctx context.Context) ([]string, error) {
	if len(c.Target.Monitors) > 0 {
		return c.Target.Monitors, nil
	}
	monitors, err := c.Client.Monitors(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(monitors))
	for _, m := range monitors {
		ids = append(ids, m.Monitor.ID.String())
	}
	return ids, nil
}

// Monitors collects the monitor datasource of every monitor that is not
// ignored.
func Monitors(ctx context.Context, c *Cycle) error {
	html, err := c.Console(ctx)
	if err != nil {
		return err
	}

	ids, err := c.monitorIDs(ctx)
	if err != nil {
		return err
	}

	batch := models.Batch{}
	for _, id := range ids {
		if c.monitorFilter.Skip(id, "", "") {
			c.Log.Debug("ignoring monitor", "monitor", id)
			continue
		}
		entry, err := c.Client.Monitor(ctx, id)
		if err != nil {
			return err
		}
		m := entry.Monitor
		if c.monitorFilter.Skip(id, m.Name.String(), MonitorHost(m)) {
			c.Log.Debug("ignoring monitor", "monitor", id, "name", m.Name.String())
			continue
		}

		zmc, err := c.Client.MonitorDaemonStatus(ctx, id, "zmc")
		if err != nil {
			return err
		}

		bag := StatBag{}
		if online, ok := scrape.MonitorOnline(html, id); ok {
			bag["online"] = online
		} else {
			c.Log.Warn("monitor not found in ZM web console", "monitor", id)
		}
		bag.Merge(MonitorAPIStats(entry, zmc))

		if events, ok := c.Events(ctx); ok {
			bag["events"] = events.For(id)
		}

		c.Log.Debug("ZM monitor output", "monitor", id, "stats", bag)
		c.emit(batch, MonitorComponent(id), DatasourceMonitor, KindMonitor, bag)
	}

	c.Batch.Merge(batch)
	return nil
}
