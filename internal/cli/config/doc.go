// Package config provides the steam-cli configuration.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.config/steam-cli/config.yaml)
//   - default.go: default values
//   - loader.go: loading (defaults < file < STEAM_* env < flags) and saving
//   - verify.go: validation for `config validate`
//   - sanitize.go: secret masking for `config show`
package config
