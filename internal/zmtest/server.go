// Package zmtest runs a fake ZoneMinder server for tests.
package zmtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// SessionCookie is the cookie the fake server issues on login.
const SessionCookie = "ZMSESSID"

// BasePath is where the fake server mounts ZoneMinder.
const BasePath = "/zm/"

// Server is a fake ZoneMinder web server. Exported fields may be changed
// before the first request.
type Server struct {
	*httptest.Server

	Username string
	Password string

	// NoCookie makes successful logins hand out no session cookie.
	NoCookie bool
	// Console is served at index.php?view=console.
	Console string
	// API maps paths below api/ (unescaped) to JSON bodies.
	API map[string]string
	// Fail maps paths below api/ to a status code to answer with.
	Fail map[string]int

	mu       sync.Mutex
	requests []string
	sessions map[string]bool
	nextID   int
	logouts  int
}

// NewServer starts a server preloaded with a 1.32 style console and API.
func NewServer() *Server {
	s := &Server{
		Username: "admin",
		Password: "secret",
		Console:  Console132,
		API:      DefaultAPI(),
		Fail:     map[string]int{},
		sessions: map[string]bool{},
	}
	s.Server = httptest.NewServer(s)
	return s
}

// BaseURL returns the canonical base URL of the fake server.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

// Requests returns "METHOD path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Logouts returns the number of logout calls.
func (s *Server) Logouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logouts
}

// Requested reports whether path (below the base path) was requested.
func (s *Server) Requested(path string) bool {
	for _, r := range s.Requests() {
		if strings.HasSuffix(r, " "+BasePath+path) {
			return true
		}
	}
	return false
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	path := strings.TrimPrefix(r.URL.Path, BasePath)

	switch {
	case path == "api/host/login.json":
		s.apiLogin(w, r)
	case path == "index.php" && r.Method == http.MethodPost:
		s.webForm(w, r)
	case path == "index.php" && r.URL.Query().Get("view") == "console":
		if !s.authorized(r) {
			fmt.Fprint(w, `<html><body><form id="loginForm">Login</form></body></html>`)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		fmt.Fprint(w, s.Console)
	case strings.HasPrefix(path, "api/"):
		s.api(w, r, strings.TrimPrefix(path, "api/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) credentialsOK(user, pass string) bool {
	return user == s.Username && pass == s.Password
}

func (s *Server) newSession(w http.ResponseWriter) {
	if s.NoCookie {
		return
	}
	s.nextID++
	id := fmt.Sprintf("sess-%d", s.nextID)
	s.sessions[id] = true
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: BasePath})
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_ = r.ParseForm()
	if !s.credentialsOK(r.PostForm.Get("user"), r.PostForm.Get("pass")) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success": false, "data": {"name": "Login denied", "message": "Login denied"}}`)
		return
	}
	s.newSession(w)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"credentials":"auth=1234","append_password":0,"version":"1.32.3","apiversion":"2.0"}`)
}

func (s *Server) webForm(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	switch r.PostForm.Get("action") {
	case "login":
		if !s.credentialsOK(r.PostForm.Get("username"), r.PostForm.Get("password")) {
			fmt.Fprint(w, `<html><body><div class="error">Invalid username or password</div></body></html>`)
			return
		}
		s.newSession(w)
		http.Redirect(w, r, BasePath+"index.php?view=console", http.StatusFound)
	case "logout":
		s.endSession(r)
		fmt.Fprint(w, `<html><body>Logged out</body></html>`)
	default:
		http.Error(w, "bad request", http.StatusBadRequest)
	}
}

func (s *Server) authorized(r *http.Request) bool {
	c, err := r.Cookie(SessionCookie)
	return err == nil && s.sessions[c.Value]
}

func (s *Server) endSession(r *http.Request) {
	s.logouts++
	if c, err := r.Cookie(SessionCookie); err == nil {
		delete(s.sessions, c.Value)
	}
}

func (s *Server) api(w http.ResponseWriter, r *http.Request, path string) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success": false, "data": {"name": "Not Authenticated"}}`)
		return
	}
	if code, ok := s.Fail[path]; ok {
		w.WriteHeader(code)
		fmt.Fprint(w, `{"success": false}`)
		return
	}
	if path == "host/logout.json" {
		s.endSession(r)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result":"ok"}`)
		return
	}
	body, ok := s.API[path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}
