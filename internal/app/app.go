package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/nitpickgo/internal/cache"
	"github.com/vk/nitpickgo/internal/ctxlog"
	"github.com/vk/nitpickgo/internal/project"
	"github.com/vk/nitpickgo/internal/registry"
	"github.com/vk/nitpickgo/internal/style"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	cache    *cache.Cache
	resolver *style.Resolver
	finder   *project.Finder
}

// NewApp is the constructor for the main application. Diagnostics are written
// to outW and logs to logW. It returns a fully initialized App instance,
// including its own isolated logger and registry.
//
// An inconsistent module list is a programmer error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	workDir := cfg.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = wd
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All checker modules registered.",
		"modules", len(modules), "file_checkers", len(reg.Files()), "tag_handlers", reg.HandlerNames())

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	var c *cache.Cache
	if cfg.NoCache {
		c = cache.Ephemeral(workDir, cfg.CacheDir)
		logger.Debug("Using an in-memory cache.", "dir", c.Dir())
	} else {
		var err error
		if c, err = cache.Open(workDir, cfg.CacheDir); err != nil {
			logger.Warn("Ignoring unreadable cache; it will be rewritten.", "error", err)
			c = cache.Empty(workDir, cfg.CacheDir)
		}
		logger.Debug("Cache opened.", "path", c.Path())
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		cache:    c,
		resolver: style.NewResolver(c, style.NewHTTPFetcher(cfg.FetchTimeout)),
		finder:   project.NewFinder(c),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Cache returns the application's resolution cache.
func (a *App) Cache() *cache.Cache {
	return a.cache
}
