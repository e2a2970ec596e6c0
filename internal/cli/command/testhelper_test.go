package command

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
	"github.com/bdu-steam/steam-cli/internal/cli/connection"
	"github.com/bdu-steam/steam-cli/internal/cli/credential"
)

// recordedRequest is what the mock backend saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

// newMockServer creates a new mock server. Handlers match the exact path.
func newMockServer(t *testing.T) *mockServer {
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		handler, ok := m.handlers[r.URL.Path]
		m.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for a path.
func (m *mockServer) handle(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// data registers a handler answering {"data": v}.
func (m *mockServer) data(path string, v any) {
	m.handle(path, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"data": v})
	})
}

// calls returns the recorded requests for path.
func (m *mockServer) calls(path string) []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedRequest
	for _, r := range m.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// harness runs the full App against a mock backend.
type harness struct {
	t      *testing.T
	server *mockServer
	conns  *connection.Manager
	stdin  string
	// prompter answers consent questions; nil refuses.
	prompter credential.Prompter
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newHarness isolates HOME and the token environment so no real config
// or credential leaks into a test.
func newHarness(t *testing.T) *harness {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(credential.DefaultTokenEnv, "")
	return &harness{
		t:      t,
		server: newMockServer(t),
		conns:  connection.NewManager(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
}

// run executes steam-cli with args against the mock backend. Output of
// earlier runs is discarded.
func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()

	prompter := h.prompter
	if prompter == nil {
		prompter = &credential.ReaderPrompter{In: strings.NewReader(""), Out: io.Discard}
	}
	app := App(Options{
		Stdout:   h.stdout,
		Stderr:   h.stderr,
		Stdin:    strings.NewReader(h.stdin),
		Prompter: prompter,
		Conns:    h.conns,
	})

	argv := append([]string{"steam-cli", "--base-url", h.server.URL, "--prefix", "/app"}, args...)
	return app.Run(argv)
}

// writeConfig writes the default config file read by every run.
func (h *harness) writeConfig(yaml string) {
	h.t.Helper()
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		h.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(yaml), 0600); err != nil {
		h.t.Fatal(err)
	}
}

// Sample backend payloads.

func sampleCourses() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "Robotics cơ bản", "duration": 150, "price": "1500000", "is_active": true},
		{"id": 2, "name": "Lập trình Scratch", "duration": 60, "price": 800000, "is_active": false},
	}
}

func sampleLessons() []map[string]any {
	return []map[string]any{
		{"id": 7, "name": "Robot", "sequence_number": 1, "module": 3, "class_room": 5, "created_at": "2024-03-01"},
	}
}
