package config

import "github.com/bdu-steam/steam-cli/pkg/token"

// Sanitize returns a copy of the config with the static token replaced by
// its fingerprint, for `config show` and logging.
func Sanitize(cfg *CLIConfig) *CLIConfig {
	sanitized := *cfg
	if sanitized.Auth.Token != "" {
		sanitized.Auth.Token = "sha256:" + token.Fingerprint(sanitized.Auth.Token)
	}
	return &sanitized
}
