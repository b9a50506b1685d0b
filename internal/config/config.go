package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"zoneminder-cli/internal/auth"
	"zoneminder-cli/internal/zmurl"
	"zoneminder-cli/pkg/models"
)

const (
	DefaultPath    = "/zm/"
	DefaultTimeout = 30 * time.Second
)

// Target is one ZoneMinder server to collect from.
type Target struct {
	Name     string        `mapstructure:"name"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Hostname string        `mapstructure:"hostname"`
	Port     int           `mapstructure:"port"`
	Path     string        `mapstructure:"path"`
	SSL      *bool         `mapstructure:"ssl"`
	URL      string        `mapstructure:"url"`
	Login    string        `mapstructure:"login"`
	Insecure *bool         `mapstructure:"insecure"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// Monitors limits monitor collection to these IDs. Empty means all.
	Monitors []string `mapstructure:"monitors"`
	Ignore   Ignore   `mapstructure:"ignore"`
	// Datapoints overrides the datapoint template of a collector kind
	// (daemon, monitor, storage).
	Datapoints map[string][]models.DataPoint `mapstructure:"datapoints"`
}

// Ignore lists components left out of collection and modeling. Names and
// hosts are regular expressions.
type Ignore struct {
	MonitorIDs   []string `mapstructure:"monitor_ids"`
	MonitorNames []string `mapstructure:"monitor_names"`
	MonitorHosts []string `mapstructure:"monitor_hosts"`
	StorageIDs   []string `mapstructure:"storage_ids"`
	StorageNames []string `mapstructure:"storage_names"`
}

// Endpoint returns the URL parts of the target with defaults applied: the
// hostname falls back to the target name, the path to /zm/ and SSL to on.
func (t Target) Endpoint() zmurl.Endpoint {
	host := t.Hostname
	if host == "" {
		host = t.Name
	}
	path := t.Path
	if path == "" {
		path = DefaultPath
	}
	ssl := true
	if t.SSL != nil {
		ssl = *t.SSL
	}
	return zmurl.Endpoint{
		Hostname: host,
		Port:     t.Port,
		Path:     path,
		SSL:      ssl,
		Override: t.URL,
	}
}

// LoginMode parses the configured login mode.
func (t Target) LoginMode() (auth.Mode, error) {
	return auth.ParseMode(t.Login)
}

// InsecureTLS defaults to true: most servers run self-signed certificates.
func (t Target) InsecureTLS() bool {
	if t.Insecure == nil {
		return true
	}
	return *t.Insecure
}

func (t Target) RequestTimeout() time.Duration {
	if t.Timeout <= 0 {
		return DefaultTimeout
	}
	return t.Timeout
}

// MonitorFilter compiles the monitor ignore lists.
func (t Target) MonitorFilter() (Filter, error) {
	return newFilter(t.Ignore.MonitorIDs, t.Ignore.MonitorNames, t.Ignore.MonitorHosts)
}

// StorageFilter compiles the storage ignore lists.
func (t Target) StorageFilter() (Filter, error) {
	return newFilter(t.Ignore.StorageIDs, t.Ignore.StorageNames, nil)
}

// Filter decides whether a component is ignored.
type Filter struct {
	ids   map[string]bool
	names []*regexp.Regexp
	hosts []*regexp.Regexp
}

func newFilter(ids, names, hosts []string) (Filter, error) {
	f := Filter{ids: map[string]bool{}}
	for _, id := range ids {
		f.ids[strings.TrimSpace(id)] = true
	}
	var err error
	if f.names, err = compileAll(names); err != nil {
		return Filter{}, err
	}
	if f.hosts, err = compileAll(hosts); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Skip reports whether a component matches any ignore rule. Empty names
// and hosts never match.
func (f Filter) Skip(id, name, host string) bool {
	if f.ids[id] {
		return true
	}
	if name != "" {
		for _, re := range f.names {
			if re.MatchString(name) {
				return true
			}
		}
	}
	if host != "" {
		for _, re := range f.hosts {
			if re.MatchString(host) {
				return true
			}
		}
	}
	return false
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".zoneminder-cli")
	}

	viper.SetEnvPrefix("zm")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: reading config: %v\n", err)
		}
	}
}

// Targets returns the configured targets. A `targets` list wins; otherwise
// a single target is assembled from top-level keys (and so ZM_* variables).
func Targets(v *viper.Viper) ([]Target, error) {
	var targets []Target
	if v.IsSet("targets") {
		if err := v.UnmarshalKey("targets", &targets); err != nil {
			return nil, fmt.Errorf("parsing targets: %w", err)
		}
	} else if v.GetString("hostname") != "" || v.GetString("url") != "" {
		t := Target{
			Name:     v.GetString("name"),
			Username: v.GetString("username"),
			Password: v.GetString("password"),
			Hostname: v.GetString("hostname"),
			Port:     v.GetInt("port"),
			Path:     v.GetString("path"),
			URL:      v.GetString("url"),
			Login:    v.GetString("login"),
			Timeout:  v.GetDuration("timeout"),
			Monitors: v.GetStringSlice("monitors"),
		}
		if v.IsSet("ssl") {
			ssl := v.GetBool("ssl")
			t.SSL = &ssl
		}
		if v.IsSet("insecure") {
			insecure := v.GetBool("insecure")
			t.Insecure = &insecure
		}
		if err := v.UnmarshalKey("ignore", &t.Ignore); err != nil {
			return nil, fmt.Errorf("parsing ignore: %w", err)
		}
		if err := v.UnmarshalKey("datapoints", &t.Datapoints); err != nil {
			return nil, fmt.Errorf("parsing datapoints: %w", err)
		}
		targets = append(targets, t)
	}

	seen := map[string]bool{}
	for i := range targets {
		t := &targets[i]
		if t.Name == "" {
			t.Name = t.Hostname
		}
		if t.Name == "" {
			t.Name = t.URL
		}
		if t.Name == "" {
			return nil, fmt.Errorf("target %d has neither name, hostname nor url", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return targets, nil
}

// Select narrows targets to the one called name. Empty name keeps all.
func Select(targets []Target, name string) ([]Target, error) {
	if name == "" {
		return targets, nil
	}
	for _, t := range targets {
		if t.Name == name {
			return []Target{t}, nil
		}
	}
	return nil, fmt.Errorf("no target named %q", name)
}
