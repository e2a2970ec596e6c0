package connection

import (
	"errors"
	"sync"
	"time"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

// ErrNotConnected is returned when a command needs a connection and none
// has been established.
var ErrNotConnected = errors.New("not connected")

// Connection is one bootstrapped session against a backend.
type Connection struct {
	Client      *HTTPClient
	Tokens      *TokenCache
	Session     *domain.Session
	TokenSource string
	ConnectedAt time.Time

	// Key identifies the settings the connection was made with. A command
	// run with different settings reconnects.
	Key string

	// CredentialErr is why no token was obtained, SessionErr why the
	// session exchange failed. Both are nil on a clean bootstrap.
	CredentialErr error
	SessionErr    error
}

// Authenticated reports whether the connection holds a bearer token.
func (c *Connection) Authenticated() bool {
	if c == nil || c.Tokens == nil {
		return false
	}
	token, ok := c.Tokens.Get()
	return ok && token != ""
}

// Manager holds the current connection. It is shared by every command run
// in one process, so a shell session bootstraps once.
type Manager struct {
	mu      sync.RWMutex
	current *Connection
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{}
}

// Connect makes conn the current connection.
func (m *Manager) Connect(conn *Connection) error {
	if conn == nil || conn.Client == nil {
		return errors.New("connection has no client")
	}
	if conn.Tokens == nil {
		conn.Tokens = conn.Client.Tokens()
	}
	if conn.ConnectedAt.IsZero() {
		conn.ConnectedAt = time.Now()
	}

	m.mu.Lock()
	m.current = conn
	m.mu.Unlock()
	return nil
}

// Disconnect drops the current connection and its cached token.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil && m.current.Tokens != nil {
		m.current.Tokens.Clear()
	}
	m.current = nil
}

// Current returns the current connection.
func (m *Manager) Current() *Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsConnected returns true if a connection is established.
func (m *Manager) IsConnected() bool {
	return m.Current() != nil
}
