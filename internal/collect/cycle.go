// Package collect runs collection cycles against ZoneMinder servers and
// turns the results into metric batches and topology maps.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"zoneminder-cli/internal/client"
	"zoneminder-cli/internal/config"
	"zoneminder-cli/internal/version"
	"zoneminder-cli/internal/zmurl"
	"zoneminder-cli/pkg/models"
)

// Cycle carries the state of one collection cycle against one target. It
// is built per cycle and handed to every step; nothing in it survives the
// cycle.
type Cycle struct {
	Target  config.Target
	BaseURL string
	Client  *client.ZMClient
	Log     *slog.Logger

	Batch    models.Batch
	Topology []models.RelMap

	monitorFilter config.Filter
	storageFilter config.Filter

	console       *string
	version       *models.VersionResponse
	events        models.EventCounts
	eventsFetched bool
}

// Step is one unit of collection. A step adds its output to the cycle only
// when it completes.
type Step func(ctx context.Context, c *Cycle) error

// Result is the output of one cycle.
type Result struct {
	Target   string
	BaseURL  string
	Batch    models.Batch
	Topology []models.RelMap
	Duration time.Duration
	Err      error
}

// NewCycle validates the target and prepares a fresh session for it. No
// request is made.
func NewCycle(target config.Target, log *slog.Logger) (*Cycle, error) {
	if target.Username == "" || target.Password == "" {
		return nil, fmt.Errorf("%w: username or password not set", ErrConfiguration)
	}

	base, err := zmurl.Build(target.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	mode, err := target.LoginMode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	monitorFilter, err := target.MonitorFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	storageFilter, err := target.StorageFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &Cycle{
		Target:  target,
		BaseURL: base,
		Client: client.New(client.ClientConfig{
			BaseURL:  base,
			Username: target.Username,
			Password: target.Password,
			Login:    mode,
			Insecure: target.InsecureTLS(),
			Timeout:  target.RequestTimeout(),
		}),
		Log:           log,
		Batch:         models.Batch{},
		monitorFilter: monitorFilter,
		storageFilter: storageFilter,
	}, nil
}

// Run performs one cycle: login, each step in order, logout. A failing
// step ends the cycle; the output of steps that completed before it is
// kept. Logout is attempted whenever login succeeded.
func Run(ctx context.Context, target config.Target, log *slog.Logger, steps ...Step) Result {
	start := time.Now()
	if log == nil {
		log = slog.Default()
	}
	log = log.With("target", target.Name)

	res := Result{Target: target.Name, Batch: models.Batch{}}

	c, err := NewCycle(target, log)
	if err != nil {
		log.Error("invalid target configuration", "error", err)
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	res.BaseURL = c.BaseURL
	log.Debug("using base ZoneMinder URL", "url", c.BaseURL)

	if err := c.Client.Login(ctx); err != nil {
		log.Error("ZoneMinder login failed", "error", err)
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	for _, step := range steps {
		if err := step(ctx, c); err != nil {
			log.Error("collection aborted", "error", err)
			res.Err = err
			break
		}
	}

	if err := c.Client.Logout(ctx); err != nil {
		log.Warn("failed to log out", "error", err)
	}

	res.Batch = c.Batch
	res.Topology = c.Topology
	res.Duration = time.Since(start)
	return res
}

// Console returns the console page, fetching it at most once per cycle.
func (c *Cycle) Console(ctx context.Context) (string, error) {
	if c.console != nil {
		return *c.console, nil
	}
	html, err := c.Client.Console(ctx)
	if err != nil {
		return "", err
	}
	c.console = &html
	return html, nil
}

// Version returns getVersion.json, fetching it at most once per cycle.
func (c *Cycle) Version(ctx context.Context) (models.VersionResponse, error) {
	if c.version != nil {
		return *c.version, nil
	}
	v, err := c.Client.Version(ctx)
	if err != nil {
		return models.VersionResponse{}, err
	}
	c.version = &v
	return v, nil
}

// Release returns the dissected daemon release.
func (c *Cycle) Release(ctx context.Context) (version.Release, error) {
	v, err := c.Version(ctx)
	if err != nil {
		return version.Release{}, err
	}
	return version.Dissect(v.Version, v.APIVersion).Daemon.Release(), nil
}

// Events returns the five minute event counts. The user may lack View
// access to events, so a failure only costs the event datapoints: ok is
// false and the failure is logged once.
func (c *Cycle) Events(ctx context.Context) (models.EventCounts, bool) {
	if !c.eventsFetched {
		c.eventsFetched = true
		events, err := c.Client.ConsoleEvents(ctx)
		if err != nil {
			c.Log.Warn("failed to get event counts", "error", fmt.Errorf("%w: %v", ErrPartialData, err))
		} else {
			c.events = events
		}
	}
	return c.events, c.events != nil
}

// Datapoints returns the datapoint template of a collector kind.
func (c *Cycle) Datapoints(kind string) []models.DataPoint {
	if dps, ok := c.Target.Datapoints[kind]; ok && len(dps) > 0 {
		return dps
	}
	return DefaultDatapoints[kind]
}

func (c *Cycle) emit(batch models.Batch, component, datasource, kind string, bag StatBag) {
	for name, v := range Normalize(bag, datasource, c.Datapoints(kind), c.Log) {
		batch.Add(component, name, v)
	}
}

var invalidID = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// PrepID turns a name into a component ID fragment.
func PrepID(name string) string {
	return invalidID.ReplaceAllString(name, "_")
}

// Component IDs
const (
	DaemonComponent = "ZoneMinder"
	monitorPrefix   = "zmMonitor_"
	storagePrefix   = "zmStorage_"
)

func MonitorComponent(id string) string   { return monitorPrefix + PrepID(id) }
func StorageComponent(name string) string { return storagePrefix + PrepID(name) }
