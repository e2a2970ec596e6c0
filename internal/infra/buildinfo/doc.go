// Package buildinfo exposes build-time information injected via ldflags:
//
//   - Version: semantic version (e.g., "1.0.0")
//   - Commit: git commit hash
//   - BuildTime: build timestamp
//   - GoVersion: Go compiler version, read from the binary when not injected
//
// Usage:
//
//	go build -ldflags "-X github.com/bdu-steam/steam-cli/internal/infra/buildinfo.Version=1.0.0"
package buildinfo
