// Package service provides the client-side services of steam-cli.
//
// Services orchestrate calls to the STEAM backend and decode its payloads
// into domain models. They depend only on small interfaces (API,
// TokenStore, TokenSource), allowing the transport and credential
// sources to be swapped in tests.
//
// This package contains:
//
//   - Bootstrapper: token acquisition and the session exchange
//   - CatalogService: typed access to every backend resource
//   - Fetch: turns any call into a domain.Result view state
package service
