package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/importers"
)

// Triggers recorded on import runs.
const (
	TriggerAPI       = "api"
	TriggerTask      = "task"
	TriggerScheduler = "scheduler"
	TriggerCLI       = "cli"
)

// ImportService runs imports and records every run.
type ImportService struct {
	importer Importer
	runs     RunRecorder
	logger   *zap.Logger
}

// NewImportService creates an import service. runs and logger may be nil.
func NewImportService(importer Importer, runs RunRecorder, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{importer: importer, runs: runs, logger: logger}
}

// Import runs one import on behalf of trigger. Progress goes both to the
// recorded run and to opts.Progress. A rejected concurrent run is not
// recorded.
func (s *ImportService) Import(ctx context.Context, trigger string, opts importers.Options) (*importers.Result, error) {
	if s.runs == nil {
		return s.importer.RunImport(ctx, opts)
	}

	run, err := s.runs.Start(trigger)
	if err != nil {
		s.logger.Warn("failed to record import run", zap.Error(err))
		return s.importer.RunImport(ctx, opts)
	}

	record := s.runs.Observer(run.ID)
	caller := opts.Progress
	opts.Progress = func(p importers.Progress) {
		record(p)
		if caller != nil {
			caller(p)
		}
	}

	result, runErr := s.importer.RunImport(ctx, opts)
	if errors.Is(runErr, importers.ErrImportInProgress) {
		// the run that holds the lock owns the progress record
		_ = s.runs.Discard(run.ID)
		return nil, runErr
	}

	if err := s.runs.Complete(run.ID, result, runErr); err != nil {
		s.logger.Warn("failed to complete import run", zap.Uint("run_id", run.ID), zap.Error(err))
	}

	return result, runErr
}

// DeleteDecks removes every imported deck.
func (s *ImportService) DeleteDecks() (int, error) {
	deleted, err := s.importer.DeleteDecks()
	if err != nil {
		return 0, err
	}
	s.logger.Info("deleted imported decks", zap.Int("count", deleted))
	return deleted, nil
}
