package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/handlers"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/jobs"
	"github.com/ternarybob/aestimo/internal/services/portfolio"
	"github.com/ternarybob/aestimo/internal/services/risk"
	"github.com/ternarybob/aestimo/internal/services/scenario"
	"github.com/ternarybob/aestimo/internal/storage"
	"github.com/ternarybob/aestimo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	RiskService      interfaces.RiskService
	ScenarioService  interfaces.ScenarioService
	PortfolioService interfaces.PortfolioService
	JobRunner        *jobs.Runner

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	RiskHandler      *handlers.RiskHandler
	PortfolioHandler *handlers.PortfolioHandler
	ScenarioHandler  *handlers.ScenarioHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.loadPortfolio(); err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	app.initServices()
	app.initHandlers()

	if err := app.scoreStartup(); err != nil {
		return nil, fmt.Errorf("failed to score portfolio at startup: %w", err)
	}

	logger.Info().Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// loadPortfolio imports the CSV snapshot when the store is empty or a
// reload is requested. A populated store is otherwise left untouched.
func (a *App) loadPortfolio() error {
	ctx := context.Background()
	store := a.StorageManager.PortfolioStorage()

	count, err := store.CountSMEs(ctx)
	if err != nil {
		return err
	}

	if count > 0 && !a.Config.Data.ReloadOnStartup {
		a.Logger.Debug().Int("smes", count).Msg("Portfolio already loaded, skipping import")
		return nil
	}

	if count > 0 {
		a.Logger.Info().Int("smes", count).Msg("Reloading portfolio snapshot")
		if err := store.ClearAll(ctx); err != nil {
			return err
		}
	}

	return badger.LoadPortfolio(ctx, store, a.Config.Data.Dir, a.Logger)
}

// initServices wires business services in dependency order
func (a *App) initServices() {
	store := a.StorageManager.PortfolioStorage()

	a.RiskService = risk.NewService(store, a.Logger)
	a.ScenarioService = scenario.NewService(store, a.Logger)
	a.PortfolioService = portfolio.NewService(store, a.Logger)
	a.JobRunner = jobs.NewRunner(a.ScenarioService, a.StorageManager.ScenarioJobStorage(), a.Logger)
}

// initHandlers wires HTTP handlers onto the services
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.RiskHandler = handlers.NewRiskHandler(a.RiskService, a.Logger)
	a.PortfolioHandler = handlers.NewPortfolioHandler(a.PortfolioService, a.Logger)
	a.ScenarioHandler = handlers.NewScenarioHandler(a.ScenarioService, a.JobRunner, a.Logger)
}

// scoreStartup computes an initial risk record for every SME so queries
// and scenarios have a scored book to work from.
func (a *App) scoreStartup() error {
	items, err := a.RiskService.ScoreAll(context.Background())
	if err != nil {
		return err
	}

	failed := 0
	for _, item := range items {
		if item.Error != "" {
			failed++
		}
	}
	a.Logger.Info().
		Int("scored", len(items)-failed).
		Int("failed", failed).
		Msg("Startup scoring complete")

	return nil
}

// Close shuts down background work and the storage layer
func (a *App) Close() error {
	if a.JobRunner != nil {
		a.JobRunner.Shutdown()
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
