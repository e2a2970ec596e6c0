package connection

import "sync"

// TokenCache holds the most recently obtained bearer token for one
// connection. The zero value is an empty cache.
type TokenCache struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewTokenCache creates an empty token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Set replaces the held token.
func (c *TokenCache) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.set = true
	c.mu.Unlock()
}

// Clear drops the held token.
func (c *TokenCache) Clear() {
	c.mu.Lock()
	c.token = ""
	c.set = false
	c.mu.Unlock()
}

// Get returns the held token and whether one is present.
func (c *TokenCache) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.set
}
