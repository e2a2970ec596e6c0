package connection

import (
	"testing"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Current() != nil {
		t.Error("new manager should have no current connection")
	}
}

func TestManager_Connect(t *testing.T) {
	m := NewManager()

	tokens := NewTokenCache()
	conn := &Connection{
		Client:      NewHTTPClient("https://stem.example.edu", tokens),
		TokenSource: "static",
	}

	if err := m.Connect(conn); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if m.Current() != conn {
		t.Error("Current() should return the connected connection")
	}
	if !m.IsConnected() {
		t.Error("IsConnected() should return true after Connect")
	}
	if conn.Tokens != tokens {
		t.Error("Connect should adopt the client's token cache")
	}
	if conn.ConnectedAt.IsZero() {
		t.Error("ConnectedAt should be set")
	}
}

func TestManager_Connect_NoClient(t *testing.T) {
	m := NewManager()

	if err := m.Connect(&Connection{}); err == nil {
		t.Error("Connect without client should fail")
	}
	if err := m.Connect(nil); err == nil {
		t.Error("Connect(nil) should fail")
	}
	if m.IsConnected() {
		t.Error("failed Connect should leave manager disconnected")
	}
}

func TestManager_Disconnect(t *testing.T) {
	m := NewManager()

	tokens := NewTokenCache()
	tokens.Set("abc")
	conn := &Connection{Client: NewHTTPClient("https://stem.example.edu", tokens)}
	if err := m.Connect(conn); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if !conn.Authenticated() {
		t.Error("connection with cached token should be authenticated")
	}

	m.Disconnect()

	if m.IsConnected() {
		t.Error("IsConnected() should return false after Disconnect")
	}
	if _, ok := tokens.Get(); ok {
		t.Error("Disconnect should clear the token cache")
	}
}

func TestManager_DisconnectWhenNotConnected(t *testing.T) {
	m := NewManager()

	// Should not panic
	m.Disconnect()

	if m.IsConnected() {
		t.Error("should not be connected")
	}
}

func TestConnection_Authenticated(t *testing.T) {
	var nilConn *Connection
	if nilConn.Authenticated() {
		t.Error("nil connection should not be authenticated")
	}

	tokens := NewTokenCache()
	conn := &Connection{Tokens: tokens}
	if conn.Authenticated() {
		t.Error("empty cache should not be authenticated")
	}

	tokens.Set("")
	if conn.Authenticated() {
		t.Error("empty token should not be authenticated")
	}

	tokens.Set("abc")
	if !conn.Authenticated() {
		t.Error("cached token should be authenticated")
	}
}
