package config

import (
	"time"

	"github.com/bdu-steam/steam-cli/internal/cli/credential"
	"github.com/bdu-steam/steam-cli/pkg/imageurl"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://stem.bdu.edu.vn/steam/apis"
	DefaultPrefix      = "/app"
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
	DefaultRate        = 10.0

	DefaultOutput = "table"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API: APISection{
			BaseURL:     DefaultBaseURL,
			Prefix:      DefaultPrefix,
			Timeout:     DefaultTimeout,
			Concurrency: DefaultConcurrency,
			Rate:        DefaultRate,
		},
		Auth: credential.Config{
			Source:   credential.SourceAuto,
			TokenEnv: credential.DefaultTokenEnv,
		},
		Output: OutputSection{
			Format: DefaultOutput,
		},
		Image: ImageSection{
			Width: imageurl.DefaultWidth,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Shell: ShellSection{
			WatchConfig: true,
		},
	}
}

// defaultValues is Default keyed by dotted path, the lowest-priority
// source of the loader.
func defaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"api.base_url":       d.API.BaseURL,
		"api.prefix":         d.API.Prefix,
		"api.timeout":        d.API.Timeout,
		"api.concurrency":    d.API.Concurrency,
		"api.rate":           d.API.Rate,
		"auth.source":        d.Auth.Source,
		"auth.token_env":     d.Auth.TokenEnv,
		"output.format":      d.Output.Format,
		"output.wide":        d.Output.Wide,
		"image.width":        d.Image.Width,
		"log.level":          d.Log.Level,
		"log.format":         d.Log.Format,
		"shell.watch_config": d.Shell.WatchConfig,
	}
}
