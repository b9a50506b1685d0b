package collect

import (
	"context"

	"zoneminder-cli/internal/scrape"
	"zoneminder-cli/pkg/models"
)

// DaemonConsoleStats scrapes the daemon-wide fields of the console page.
// Fields missing from the page are absent from the bag.
func DaemonConsoleStats(html string) StatBag {
	bag := StatBag{}
	if v, ok := scrape.SharedMemory(html); ok {
		bag["devshm"] = v
	}
	if used, limit, ok := scrape.DBConnections(html); ok {
		bag["dbconn"] = used
		bag["dbmax"] = limit
	}
	if v, ok := scrape.Bandwidth(html); ok {
		bag["bandwidth"] = v
	}
	if v, ok := scrape.Capturing(html); ok {
		bag["capturing"] = v
	}
	return bag
}

// DaemonAPIStats derives the daemon stats of the JSON API responses.
func DaemonAPIStats(check models.DaemonCheckResponse, states []models.State, load []models.Flex) StatBag {
	bag := StatBag{}

	bag["result"] = check.Result
	if check.Result == "" {
		bag["result"] = 0
	}

	if id, ok := ActiveState(states); ok {
		bag["state"] = id
	}

	if len(load) >= 3 {
		bag["load-1"] = load[0]
		bag["load-5"] = load[1]
		bag["load-15"] = load[2]
	}
	return bag
}

// Daemon collects the daemon datasource: console figures, daemon check,
// run state, load and event totals.
func Daemon(ctx context.Context, c *Cycle) error {
	html, err := c.Console(ctx)
	if err != nil {
		return err
	}
	bag := DaemonConsoleStats(html)

	check, err := c.Client.DaemonCheck(ctx)
	if err != nil {
		return err
	}
	states, err := c.Client.States(ctx)
	if err != nil {
		return err
	}
	load, err := c.Client.Load(ctx)
	if err != nil {
		return err
	}
	bag.Merge(DaemonAPIStats(check, states, load))

	if events, ok := c.Events(ctx); ok {
		bag["events"] = events.Total()
	}

	c.Log.Debug("ZM daemon output", "stats", bag)

	batch := models.Batch{}
	c.emit(batch, DaemonComponent, DatasourceDaemon, KindDaemon, bag)
	c.Batch.Merge(batch)
	return nil
}
