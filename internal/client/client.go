package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"

	"zoneminder-cli/internal/auth"
	"zoneminder-cli/internal/zmurl"
)

// ZMClient is a session against one ZoneMinder server. It owns its cookie
// jar, so a client must not outlive one collection cycle.
type ZMClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	jar      http.CookieJar
	loggedIn bool
}

type ClientConfig struct {
	BaseURL  string // canonical base URL, ending in a slash
	Username string
	Password string
	Login    auth.Mode
	Insecure bool // skip TLS verification (self-signed certificates)
	Timeout  time.Duration
}

func New(cfg ClientConfig) *ZMClient {
	// cookiejar.New never fails
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	r := resty.New()
	r.SetCookieJar(jar)
	r.SetHeader("Accept", "application/json, text/html;q=0.9")
	r.SetHeader("User-Agent", "zoneminder-cli")
	if cfg.Insecure {
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	return &ZMClient{
		HTTP:   r,
		Config: cfg,
		jar:    jar,
	}
}

// APIURL returns the JSON API root.
func (c *ZMClient) APIURL() string {
	return zmurl.API(c.Config.BaseURL)
}

// Login establishes the session. A response carrying a known rejection
// phrase, or one that leaves no cookie behind, is an authentication failure.
func (c *ZMClient) Login(ctx context.Context) error {
	path, form := auth.Form(c.Config.Login, c.Config.Username, c.Config.Password)
	target := c.APIURL() + path
	if c.Config.Login == auth.ModeWeb {
		target = c.Config.BaseURL + path
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetFormData(form).
		Post(target)

	if err != nil {
		return fmt.Errorf("%w: login: %v", ErrTransport, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: login rejected: %s", ErrAuthentication, resp.Status())
	case resp.IsError():
		return fmt.Errorf("%w: login: %s", ErrTransport, resp.Status())
	}

	if auth.Denied(resp.String()) {
		return fmt.Errorf("%w: credentials invalid", ErrAuthentication)
	}
	if !c.hasSession(target) {
		return fmt.Errorf("%w: no session cookie received", ErrAuthentication)
	}

	c.loggedIn = true
	return nil
}

func (c *ZMClient) hasSession(urls ...string) bool {
	for _, raw := range append(urls, c.Config.BaseURL, c.APIURL()) {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if len(c.jar.Cookies(u)) > 0 {
			return true
		}
	}
	return false
}

// LoggedIn reports whether Login succeeded and Logout has not been called.
func (c *ZMClient) LoggedIn() bool {
	return c.loggedIn
}

// GetJSON fetches an API path and decodes the body into out. The body is
// decoded regardless of Content-Type, which some releases get wrong.
func (c *ZMClient) GetJSON(ctx context.Context, path string, out any) error {
	if !c.loggedIn {
		return fmt.Errorf("%w: not logged in", ErrAuthentication)
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		Get(c.APIURL() + path)

	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrTransport, path, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: GET %s: %s", ErrTransport, path, resp.Status())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrTransport, path, err)
	}
	return nil
}

// GetHTML fetches a page relative to the base URL.
func (c *ZMClient) GetHTML(ctx context.Context, path string) (string, error) {
	if !c.loggedIn {
		return "", fmt.Errorf("%w: not logged in", ErrAuthentication)
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(c.Config.BaseURL + path)

	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrTransport, path, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("%w: GET %s: %s", ErrTransport, path, resp.Status())
	}

	return resp.String(), nil
}

// Logout ends the session. The client is unusable afterwards whatever the
// outcome.
func (c *ZMClient) Logout(ctx context.Context) error {
	if !c.loggedIn {
		return nil
	}
	c.loggedIn = false

	req := c.HTTP.R().SetContext(ctx)
	var (
		resp *resty.Response
		err  error
	)
	if c.Config.Login == auth.ModeWeb {
		resp, err = req.SetFormData(map[string]string{"action": "logout"}).
			Post(zmurl.WebLogin(c.Config.BaseURL))
	} else {
		resp, err = req.Get(c.APIURL() + "host/logout.json")
	}

	if err != nil {
		return fmt.Errorf("%w: logout: %v", ErrTransport, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: logout: %s", ErrTransport, resp.Status())
	}
	return nil
}
