package app

import (
	"fmt"
	"slices"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl and yaml files or directories
	Endpoint    string   // overrides the endpoint declared in files
	MachineName string
	// Arguments are the positional launch tokens seen by the policy.
	Arguments []string

	LogFormat string
	LogLevel  string

	DryRun        bool
	RouteManifest string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if !slices.Contains([]string{"text", "json"}, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if len(cfg.ConfigPaths) == 0 && cfg.Endpoint == "" {
		return nil, fmt.Errorf("either a configuration path or an endpoint name is required")
	}

	cfg.ConfigPaths = slices.Clone(cfg.ConfigPaths)
	cfg.Arguments = slices.Clone(cfg.Arguments)
	return &cfg, nil
}
