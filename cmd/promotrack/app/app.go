// Package app provides the application context and dependency management
// for the promotrack CLI. It centralizes configuration, logging, and the
// lazily constructed tracker instance.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sekaitools/promotrack"
	"github.com/sekaitools/promotrack/internal/translate"
	"github.com/sekaitools/promotrack/pkg/errors"
)

// App represents the promotrack application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger

	// Tracker instance (lazy-initialized, singleton)
	mu      sync.Mutex
	tracker promotrack.Tracker
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Tracker returns the tracker instance, creating it on first use. The
// context gates translator client construction only.
func (a *App) Tracker(ctx context.Context) (promotrack.Tracker, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tracker != nil {
		return a.tracker, nil
	}

	translator, err := translate.FromEnv(ctx)
	if err != nil {
		return nil, err
	}

	tracker, err := promotrack.New(
		promotrack.WithDataDir(a.config.DataDir),
		promotrack.WithTranslator(translator),
		promotrack.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	a.tracker = tracker
	return a.tracker, nil
}
