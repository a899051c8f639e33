// Package app wires the flstudio-hub services from settings. Both binaries
// build one App at startup and close it on exit.
package app

import (
	"fmt"

	"github.com/handiism/flstudio-hub/internal/ai"
	"github.com/handiism/flstudio-hub/internal/catalog"
	"github.com/handiism/flstudio-hub/internal/config"
	ioutils "github.com/handiism/flstudio-hub/internal/io"
	"github.com/handiism/flstudio-hub/internal/kv"
	"github.com/handiism/flstudio-hub/internal/logging"
	"github.com/handiism/flstudio-hub/internal/state"
	"github.com/handiism/flstudio-hub/internal/templates"
	"github.com/handiism/flstudio-hub/internal/tui"
	"go.uber.org/zap"
)

// App holds the opened store and the services built on it.
type App struct {
	Settings  *config.Settings
	Logger    *zap.Logger
	Store     kv.Store
	Catalog   *catalog.Catalog
	Templates *templates.Service
	Gateway   *ai.Gateway
	State     *state.Store
}

// Open validates settings, opens the configured store and builds every
// service. logger may be nil.
func Open(settings *config.Settings, logger *zap.Logger, opts ...state.StoreOption) (*App, error) {
	logger = logging.OrNop(logger)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if settings.StoreBackend != config.BackendMemory {
		if err := ioutils.EnsureDir(settings.DataDir); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	store, err := kv.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a, err := build(settings, logger, store, opts)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Debug("app ready",
		zap.String("backend", settings.StoreBackend),
		zap.String("store", settings.StorePath()),
		zap.Int("plugins", a.Catalog.Len()),
		zap.Bool("remote_ai", a.Gateway.HasAPIKey()))
	return a, nil
}

func build(settings *config.Settings, logger *zap.Logger, store kv.Store, opts []state.StoreOption) (*App, error) {
	cat, err := catalog.Load(settings.PluginsFile)
	if err != nil {
		return nil, fmt.Errorf("load plugins: %w", err)
	}

	gw, err := ai.NewGateway(store, settings, logger.Named("ai"))
	if err != nil {
		return nil, fmt.Errorf("init ai gateway: %w", err)
	}

	st, err := state.NewStore(store, logger.Named("state"), opts...)
	if err != nil {
		return nil, fmt.Errorf("load app state: %w", err)
	}

	return &App{
		Settings:  settings,
		Logger:    logger,
		Store:     store,
		Catalog:   cat,
		Templates: templates.NewService(store, logger.Named("templates")),
		Gateway:   gw,
		State:     st,
	}, nil
}

// TUIDeps returns the services the terminal UI needs.
func (a *App) TUIDeps() tui.Deps {
	return tui.Deps{
		Settings:  a.Settings,
		State:     a.State,
		Catalog:   a.Catalog,
		Templates: a.Templates,
		Gateway:   a.Gateway,
		Logger:    a.Logger.Named("tui"),
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
