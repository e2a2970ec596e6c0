package config

import (
	"time"

	"github.com/bdu-steam/steam-cli/internal/cli/credential"
)

// CLIConfig is the configuration for steam-cli.
type CLIConfig struct {
	API     APISection        `koanf:"api" yaml:"api"`
	Auth    credential.Config `koanf:"auth" yaml:"auth"`
	Output  OutputSection     `koanf:"output" yaml:"output"`
	Image   ImageSection      `koanf:"image" yaml:"image"`
	Log     LogSection        `koanf:"log" yaml:"log"`
	Metrics MetricsSection    `koanf:"metrics" yaml:"metrics"`
	Shell   ShellSection      `koanf:"shell" yaml:"shell"`

	// File is the config file that was read, empty when none was.
	File string `koanf:"-" yaml:"-"`
}

// APISection configures the backend connection.
type APISection struct {
	BaseURL string        `koanf:"base_url" yaml:"base_url"`
	Prefix  string        `koanf:"prefix" yaml:"prefix"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`

	// Concurrency and Rate bound the gallery lesson-name lookups.
	Concurrency int     `koanf:"concurrency" yaml:"concurrency"`
	Rate        float64 `koanf:"rate" yaml:"rate"`
}

// OutputSection sets output preferences.
type OutputSection struct {
	Format string `koanf:"format" yaml:"format"` // table, json, yaml
	Wide   bool   `koanf:"wide" yaml:"wide"`
}

// ImageSection configures image URL rewriting.
type ImageSection struct {
	Width    int    `koanf:"width" yaml:"width"`
	Fallback string `koanf:"fallback" yaml:"fallback,omitempty"`
}

// LogSection configures the logger.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// MetricsSection configures the Prometheus textfile export.
type MetricsSection struct {
	File string `koanf:"file" yaml:"file,omitempty"`
}

// ShellSection configures the interactive shell.
type ShellSection struct {
	HistoryFile string `koanf:"history_file" yaml:"history_file,omitempty"`
	WatchConfig bool   `koanf:"watch_config" yaml:"watch_config"`
}
