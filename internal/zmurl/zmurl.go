// Package zmurl assembles and validates ZoneMinder base URLs.
package zmurl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pattern is the canonical shape of a base URL: scheme, host, optional port
// and a path ending in a slash.
var Pattern = regexp.MustCompile(`^https?://\S+:?\d*/?\S*/$`)

// ErrInvalid is returned when no usable base URL can be produced.
var ErrInvalid = errors.New("invalid ZoneMinder URL")

// Endpoint holds the discrete parts of a base URL. Override, when valid,
// takes precedence over everything else.
type Endpoint struct {
	Hostname string
	Port     int
	Path     string
	SSL      bool
	Override string
}

// Valid reports whether url has the canonical base URL shape.
func Valid(url string) bool {
	return Pattern.MatchString(url)
}

// Build returns the base URL of the endpoint.
func Build(e Endpoint) (string, error) {
	if Valid(e.Override) {
		return e.Override, nil
	}

	host := strings.TrimSpace(e.Hostname)
	if host == "" {
		if e.Override != "" {
			return "", fmt.Errorf("%w: %q", ErrInvalid, e.Override)
		}
		return "", fmt.Errorf("%w: no hostname", ErrInvalid)
	}
	// Device IDs use underscores in place of dots
	if !strings.Contains(host, ".") {
		host = strings.ReplaceAll(host, "_", ".")
	}

	scheme := "http"
	if e.SSL {
		scheme = "https"
	}

	port := ""
	if e.Port > 0 {
		port = fmt.Sprintf(":%d", e.Port)
	}

	url := fmt.Sprintf("%s://%s%s%s", scheme, host, port, NormalizePath(e.Path))
	if !Valid(url) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, url)
	}
	return url, nil
}

// NormalizePath makes sure path starts and ends with a slash.
func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// API returns the JSON API root under a base URL.
func API(base string) string {
	return base + "api/"
}

// Console returns the console page under a base URL.
func Console(base string) string {
	return base + "index.php?view=console"
}

// WebLogin returns the web UI login target under a base URL.
func WebLogin(base string) string {
	return base + "index.php"
}
