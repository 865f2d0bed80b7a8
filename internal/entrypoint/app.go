package entrypoint

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/config"
	"github.com/mrlokans/advisor/internal/database"
	"github.com/mrlokans/advisor/internal/database/decks"
	"github.com/mrlokans/advisor/internal/database/runs"
	"github.com/mrlokans/advisor/internal/hsreplay"
	"github.com/mrlokans/advisor/internal/importers"
	"github.com/mrlokans/advisor/internal/metastats"
	"github.com/mrlokans/advisor/internal/services"
)

// App holds the components shared by the server and the CLI commands.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB       *database.Database
	Decks    *decks.Repository
	Runs     *runs.Repository
	Pipeline *importers.Pipeline
	Imports  *services.ImportService
}

// NewApp opens the database and wires the import pipeline.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.NewDatabase(cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	site := metastats.NewClient(metastats.Options{
		BaseURL:   cfg.Metastats.BaseURL,
		Timeout:   cfg.Import.RequestTimeout,
		UserAgent: cfg.Import.UserAgent,
	})
	ladder := hsreplay.NewClient(hsreplay.Options{
		BaseURL:   cfg.HSReplay.BaseURL,
		Timeout:   cfg.Import.RequestTimeout,
		UserAgent: cfg.Import.UserAgent,
	})

	deckRepo := decks.NewRepository(db.DB)
	runRepo := runs.NewRepository(db.DB, logger.Named("runs"))

	pipeline := importers.NewPipeline(importers.PipelineConfig{
		Site:           site,
		Ladder:         ladder,
		GameTypes:      cfg.HSReplay.GameTypes,
		Store:          deckRepo,
		Logger:         logger.Named("importer"),
		MaxConcurrency: cfg.Import.MaxConcurrency,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Decks:    deckRepo,
		Runs:     runRepo,
		Pipeline: pipeline,
		Imports:  services.NewImportService(pipeline, runRepo, logger.Named("imports")),
	}, nil
}

// ImportOptions returns the configured import defaults.
func (a *App) ImportOptions() importers.Options {
	return importers.Options{
		Archive:        a.Config.Import.Archive,
		DeletePrevious: a.Config.Import.DeletePrevious,
		ShortenNames:   a.Config.Import.ShortenNames,
	}
}

// Close releases the database and flushes the logger.
func (a *App) Close() error {
	// Sync reports spurious errors for terminal stderr.
	_ = a.Logger.Sync()
	return a.DB.Close()
}
