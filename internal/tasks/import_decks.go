package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/importers"
	"github.com/mrlokans/advisor/internal/services"
)

// DeckImporter runs an archetype import. Implemented by services.ImportService.
type DeckImporter interface {
	Import(ctx context.Context, trigger string, opts importers.Options) (*importers.Result, error)
}

// ImportDecksTask runs one archetype deck import in the background.
type ImportDecksTask struct {
	Archive        bool   `json:"archive"`
	DeletePrevious bool   `json:"delete_previous"`
	ShortenNames   bool   `json:"shorten_names"`
	Trigger        string `json:"trigger,omitempty"`
}

// Config returns the queue configuration for import tasks. An import is
// not retried; the next scheduled run picks it up.
func (t ImportDecksTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_decks",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Options converts the task into pipeline options.
func (t ImportDecksTask) Options() importers.Options {
	return importers.Options{
		Archive:        t.Archive,
		DeletePrevious: t.DeletePrevious,
		ShortenNames:   t.ShortenNames,
	}
}

// ImportDecksProcessor creates a processor function for ImportDecksTask.
// A task that finds another import running completes without error.
func ImportDecksProcessor(importer DeckImporter, logger *zap.Logger) backlite.QueueProcessor[ImportDecksTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task ImportDecksTask) error {
		if importer == nil {
			return fmt.Errorf("deck importer not configured")
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = services.TriggerTask
		}

		result, err := importer.Import(ctx, trigger, task.Options())
		if errors.Is(err, importers.ErrImportInProgress) {
			logger.Info("import already in progress, skipping task")
			return nil
		}
		if err != nil {
			return fmt.Errorf("import decks: %w", err)
		}

		logger.Info("import task finished",
			zap.Int("imported", result.Imported),
			zap.Int("unique", result.Unique),
			zap.Strings("failed_sources", result.FailedSources()))
		return nil
	}
}

// NewImportDecksQueue creates a backlite queue for import tasks.
func NewImportDecksQueue(importer DeckImporter, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(ImportDecksProcessor(importer, logger))
}

var _ DeckImporter = (*services.ImportService)(nil)
