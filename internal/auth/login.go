// Package auth builds ZoneMinder login requests and recognizes rejected
// logins.
package auth

import (
	"fmt"
	"strings"
)

// Mode selects how a session is established.
type Mode string

const (
	// ModeAPI posts to api/host/login.json (1.32+, stateful session).
	ModeAPI Mode = "api"
	// ModeWeb posts the console login form to index.php, which every
	// release accepts.
	ModeWeb Mode = "web"
)

// ParseMode maps a configured value to a Mode. Empty selects ModeAPI.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAPI:
		return ModeAPI, nil
	case ModeWeb:
		return ModeWeb, nil
	}
	return "", fmt.Errorf("unknown login mode %q (want %q or %q)", s, ModeAPI, ModeWeb)
}

// Form returns the relative login path (against the API root for ModeAPI,
// the base URL for ModeWeb) and its form fields.
func Form(mode Mode, username, password string) (path string, form map[string]string) {
	if mode == ModeWeb {
		return "index.php", map[string]string{
			"action":   "login",
			"view":     "postlogin",
			"username": username,
			"password": password,
		}
	}
	return "host/login.json", map[string]string{
		"user":     username,
		"pass":     password,
		"stateful": "1",
	}
}

// Phrases found in login responses when the credentials are rejected.
var deniedPhrases = []string{
	"Login denied",
	`"success": false`,
	`"success":false`,
	"Invalid username or password",
}

// Denied reports whether a login response body signals rejected credentials.
func Denied(body string) bool {
	for _, p := range deniedPhrases {
		if strings.Contains(body, p) {
			return true
		}
	}
	return false
}
