// Package connection provides the backend connection for steam-cli.
//
// This package holds everything one bootstrapped session needs:
//
//   - tokens.go: the single-slot bearer token cache
//   - http.go: the JSON API client (headers, query encoding, error mapping)
//   - manager.go: the current connection shared by every command of a process
//
// The token cache is created per connection and injected into the client;
// there is no package-level token state.
package connection
