package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/importers"
	"github.com/mrlokans/advisor/internal/services"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// DeckImporter runs an archetype import. Implemented by services.ImportService.
type DeckImporter interface {
	Import(ctx context.Context, trigger string, opts importers.Options) (*importers.Result, error)
}

// Config controls the periodic import.
type Config struct {
	Enabled  bool
	Schedule string // Cron format: "0 6 * * *" = daily at 06:00
	Options  importers.Options

	// Timeout bounds a single scheduled run. Default: 30m
	Timeout time.Duration
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// ImportScheduler manages periodic archetype imports.
type ImportScheduler struct {
	importer DeckImporter
	config   Config
	logger   *zap.Logger

	cron       *cron.Cron
	schedule   cron.Schedule
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
	lastResult *importers.Result
	lastErr    error
}

// NewImportScheduler creates a new scheduler instance. logger may be nil.
func NewImportScheduler(importer DeckImporter, config Config, logger *zap.Logger) *ImportScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Minute
	}
	return &ImportScheduler{
		importer: importer,
		config:   config,
		logger:   logger.Named("import_scheduler"),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if the periodic import is enabled
func (s *ImportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		s.logger.Info("disabled")
		return nil
	}

	schedule, err := parser.Parse(s.config.Schedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}
	s.schedule = schedule
	s.cron.Schedule(schedule, cron.FuncJob(s.runSync))

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("started",
		zap.String("schedule", s.config.Schedule),
		zap.Time("next_run", schedule.Next(time.Now())))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running import
func (s *ImportScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// runSync takes the lock, so wait outside of it
	<-s.cron.Stop().Done()
	if cancel != nil {
		cancel()
	}

	s.logger.Info("stopped")
}

// RunNow triggers an immediate import
func (s *ImportScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active
func (s *ImportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether an import is currently in progress
func (s *ImportScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// LastResult returns the outcome of the most recent scheduled import.
func (s *ImportScheduler) LastResult() (*importers.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult, s.lastErr
}

// GetNextRunTime returns when the next import will occur
func (s *ImportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	t := s.schedule.Next(time.Now())
	return &t
}

// runSync performs one import
func (s *ImportScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		s.logger.Info("skipped, already syncing")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	s.logger.Info("starting scheduled import")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	result, err := s.importer.Import(ctx, services.TriggerScheduler, s.config.Options)
	if errors.Is(err, importers.ErrImportInProgress) {
		s.logger.Info("skipped, another import is running")
		return
	}

	s.mu.Lock()
	s.lastResult, s.lastErr = result, err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled import failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled import finished",
		zap.Int("imported", result.Imported),
		zap.Int("unique", result.Unique),
		zap.Duration("duration", time.Since(startTime).Round(time.Millisecond)))
}

var _ DeckImporter = (*services.ImportService)(nil)
