package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Files under inspection. Empty means the primary file of the project
	// containing WorkDir.
	Files []string
	// Root skips root discovery when set.
	Root string
	// WorkDir anchors the cache directory and relative cached paths.
	// Empty means the process working directory.
	WorkDir string

	CacheDir     string
	NoCache      bool
	FetchTimeout time.Duration

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CacheDir == "" {
		return nil, errors.New("CacheDir is a required configuration field and cannot be empty")
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("FetchTimeout must be positive, got %s", cfg.FetchTimeout)
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}
