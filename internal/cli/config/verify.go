package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Output formats accepted by output.format.
var validOutputs = map[string]bool{"table": true, "json": true, "yaml": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Verify validates the configuration and reports every problem found.
func Verify(cfg *CLIConfig) error {
	return errors.Join(
		verifyAPI(&cfg.API),
		verifyOutput(cfg),
		cfg.Auth.Validate(),
	)
}

func verifyAPI(cfg *APISection) error {
	var errs []error

	u, err := url.Parse(cfg.BaseURL)
	switch {
	case cfg.BaseURL == "":
		errs = append(errs, errors.New("api.base_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api.base_url must be an http(s) URL, got %q", cfg.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api.base_url has no host: %q", cfg.BaseURL))
	}

	if cfg.CAFile != "" {
		if _, err := os.Stat(cfg.CAFile); err != nil {
			errs = append(errs, fmt.Errorf("api.ca_file: %w", err))
		}
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if cfg.Concurrency < 1 {
		errs = append(errs, errors.New("api.concurrency must be at least 1"))
	}
	if cfg.Rate < 0 {
		errs = append(errs, errors.New("api.rate must not be negative"))
	}
	return errors.Join(errs...)
}

func verifyOutput(cfg *CLIConfig) error {
	var errs []error
	if !validOutputs[strings.ToLower(cfg.Output.Format)] {
		errs = append(errs, fmt.Errorf("output.format must be table, json or yaml, got %q", cfg.Output.Format))
	}
	if cfg.Image.Width < 1 {
		errs = append(errs, errors.New("image.width must be positive"))
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, fmt.Errorf("unknown log.level %q", cfg.Log.Level))
	}
	return errors.Join(errs...)
}
