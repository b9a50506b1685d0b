package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zoneminder-cli/internal/collect"
	"zoneminder-cli/internal/config"
	"zoneminder-cli/internal/zmurl"
	"zoneminder-cli/pkg/models"
)

var (
	listenAddr    string
	serviceAction string // install, uninstall, start, stop
)

const metricPrefix = "zoneminder"

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	targets []config.Target
	log     *slog.Logger

	server *http.Server
	cancel context.CancelFunc
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.server = &http.Server{
		Addr:              listenAddr,
		Handler:           newRouter(ctx, p.targets, p.log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go p.run()
	return nil
}

func (p *program) run() {
	p.log.Info("ZoneMinder exporter listening", "addr", p.server.Addr, "targets", len(p.targets))

	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.log.Error("HTTP server error", "error", err)
		os.Exit(1)
	}
}

func (p *program) Stop(s service.Service) error {
	p.log.Info("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.cancel != nil {
		p.cancel()
	}
	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			p.log.Warn("server forced to shutdown", "error", err)
		}
	}
	return nil
}

// newRouter serves /metrics, the target list and a landing page.
func newRouter(ctx context.Context, targets []config.Target, lg *slog.Logger) *mux.Router {
	registry := prometheus.NewRegistry()
	registry.MustRegister(&ZMCollector{Ctx: ctx, Targets: targets, Log: lg})

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(lg.Handler(), slog.LevelError),
	})).Methods(http.MethodGet)
	r.HandleFunc("/targets", targetsHandler(targets)).Methods(http.MethodGet)
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>ZoneMinder Exporter</title></head><body>
<h1>ZoneMinder Exporter</h1><p><a href="/metrics">Metrics</a> <a href="/targets">Targets</a></p>
</body></html>`)
	}).Methods(http.MethodGet)
	return r
}

type targetView struct {
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	Username string `json:"username"`
	Error    string `json:"error,omitempty"`
}

// targetsHandler lists the configured targets without credentials.
func targetsHandler(targets []config.Target) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		views := make([]targetView, 0, len(targets))
		for _, t := range targets {
			v := targetView{Name: t.Name, Username: t.Username}
			if base, err := zmurl.Build(t.Endpoint()); err != nil {
				v.Error = err.Error()
			} else {
				v.URL = base
			}
			views = append(views, v)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(views)
	}
}

// --- COLLECTOR LOGIC ---

// ZMCollector runs one collection cycle per target on every scrape. The
// metric set depends on the datapoint templates, so it is an unchecked
// collector and describes nothing.
type ZMCollector struct {
	Ctx     context.Context
	Targets []config.Target
	Log     *slog.Logger
	Mutex   sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		metricPrefix+"_up", "Was the last collection from the target successful.", []string{"target"}, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		metricPrefix+"_scrape_duration_seconds", "Time taken to collect from the target.", []string{"target"}, nil,
	)
)

var scrapeSteps = []collect.Step{collect.Daemon, collect.Monitors, collect.Storage}

func (c *ZMCollector) Describe(ch chan<- *prometheus.Desc) {}

func (c *ZMCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	lg := c.Log
	if lg == nil {
		lg = slog.Default()
	}

	results := make([]collect.Result, len(c.Targets))
	var wg sync.WaitGroup
	for i, t := range c.Targets {
		wg.Add(1)
		go func(i int, t config.Target) {
			defer wg.Done()
			results[i] = collect.Run(ctx, t, lg, scrapeSteps...)
		}(i, t)
	}
	wg.Wait()

	for _, res := range results {
		up := 1.0
		if res.Err != nil {
			up = 0
		}
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, up, res.Target)
		ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, res.Duration.Seconds(), res.Target)

		// distinct datapoints may share an exported name
		seen := map[[2]string]bool{}
		for component, values := range res.Batch {
			for name, v := range values {
				key := [2]string{MetricName(name), component}
				if seen[key] {
					lg.Warn("skipping duplicate series", "target", res.Target, "component", component, "metric", name)
					continue
				}
				seen[key] = true
				desc := prometheus.NewDesc(key[0], "ZoneMinder "+name+" datapoint.", []string{"target", "component"}, nil)
				m, err := prometheus.NewConstMetric(desc, valueType(v.Type), v.Value, res.Target, component)
				if err != nil {
					lg.Debug("skipping metric", "metric", name, "error", err)
					continue
				}
				ch <- m
			}
		}
	}
}

var invalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// MetricName maps a datasource metric such as Daemon_load-1 to its
// exported name, zoneminder_daemon_load_1.
func MetricName(name string) string {
	return metricPrefix + "_" + strings.ToLower(invalidMetricChars.ReplaceAllString(name, "_"))
}

func valueType(t models.CounterType) prometheus.ValueType {
	switch t {
	case models.Counter, models.Derive:
		return prometheus.CounterValue
	}
	return prometheus.GaugeValue
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes ZoneMinder metrics of every
configured target. Can be installed as a system service.`,
	Example: `  zoneminder-cli exporter --listen :9380
  zoneminder-cli exporter --config /etc/zoneminder-cli.yaml --service install`,
	Run: func(cmd *cobra.Command, args []string) {
		targets := loadTargets()

		svcConfig := &service.Config{
			Name:        "zoneminder-exporter",
			DisplayName: "ZoneMinder Prometheus Exporter",
			Description: "Exposes ZoneMinder daemon, monitor and storage metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{"exporter", "--listen", listenAddr},
		}
		if used := viper.ConfigFileUsed(); used != "" {
			if abs, err := filepath.Abs(used); err == nil {
				used = abs
			}
			svcConfig.Arguments = append(svcConfig.Arguments, "--config", used)
		}

		prg := &program{targets: targets, log: logger}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// Service control actions (install, start, stop, uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && viper.ConfigFileUsed() == "" {
				log.Fatal("Error: the service needs a config file; pass --config or create $HOME/.zoneminder-cli.yaml")
			}
			if err := service.Control(s, serviceAction); err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Runs under the service manager, or interactively without --service
		svcLogger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			_ = svcLogger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&listenAddr, "listen", ":9380", "Address to listen on")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
