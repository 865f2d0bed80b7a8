// Package runs provides database operations for import run tracking.
//
// # Usage
//
//	repo := runs.NewRepository(db, logger)
//	run, err := repo.Start("api")
//	result, err := pipeline.RunImport(ctx, importers.Options{Progress: repo.Observer(run.ID)})
//	err = repo.Complete(run.ID, result, err)
package runs

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/importers"
)

// staleAfter is how long a running import may go without a progress update
// before it is considered interrupted.
const staleAfter = 10 * time.Minute

// Repository handles all import run database operations.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewRepository creates a new runs repository. logger may be nil.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger, now: time.Now}
}

// Start records a new running import.
func (r *Repository) Start(trigger string) (*entities.ImportRun, error) {
	now := r.now()
	run := &entities.ImportRun{
		Status:    entities.ImportStatusRunning,
		Trigger:   trigger,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// UpdateProgress stores a progress snapshot on a run. The tracker's imported
// counter counts parsed decks, so it lands in the parsed column.
func (r *Repository) UpdateProgress(id uint, progress importers.Progress) error {
	return r.db.Model(&entities.ImportRun{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"found":      progress.Found,
			"parsed":     progress.Imported,
			"updated_at": r.now(),
		}).Error
}

// Observer returns a progress observer that stores every snapshot on the
// run. Write failures are logged and otherwise ignored; progress is advisory.
func (r *Repository) Observer(id uint) importers.ProgressObserver {
	return func(p importers.Progress) {
		if err := r.UpdateProgress(id, p); err != nil {
			r.logger.Debug("failed to store import progress",
				zap.Uint("run_id", id),
				zap.Int("found", p.Found),
				zap.Int("parsed", p.Imported),
				zap.Error(err))
		}
	}
}

// Complete stores the outcome of a run. A nil result with runErr marks the
// run failed; a degraded result or failed sources mark it degraded.
func (r *Repository) Complete(id uint, result *importers.Result, runErr error) error {
	now := r.now()
	updates := map[string]any{
		"status":       entities.ImportStatusCompleted,
		"updated_at":   now,
		"completed_at": now,
	}

	if result != nil {
		updates["found"] = result.Found
		updates["parsed"] = result.Parsed
		updates["unique"] = result.Unique
		updates["imported"] = result.Imported
		updates["deleted"] = result.Deleted
		if failed := result.FailedSources(); len(failed) > 0 {
			updates["failed_sources"] = strings.Join(failed, ",")
			updates["status"] = entities.ImportStatusDegraded
		}
		if result.Degraded() {
			updates["status"] = entities.ImportStatusDegraded
		}
		if err := result.Err(); err != nil {
			updates["error"] = err.Error()
		}
	}

	if runErr != nil {
		updates["status"] = entities.ImportStatusFailed
		updates["error"] = runErr.Error()
	}

	return r.db.Model(&entities.ImportRun{}).Where("id = ?", id).Updates(updates).Error
}

// Discard removes a run that never started importing.
func (r *Repository) Discard(id uint) error {
	return r.db.Delete(&entities.ImportRun{}, id).Error
}

// Get retrieves a run by id.
func (r *Repository) Get(id uint) (*entities.ImportRun, error) {
	var run entities.ImportRun
	if err := r.db.First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Latest returns the most recent run, or nil when none was recorded.
func (r *Repository) Latest() (*entities.ImportRun, error) {
	var run entities.ImportRun
	err := r.db.Order("started_at DESC, id DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// IsRunning checks if an import is currently in progress. A run not updated
// for ten minutes is marked failed and ignored.
func (r *Repository) IsRunning() (bool, error) {
	var run entities.ImportRun
	err := r.db.Where("status = ?", entities.ImportStatusRunning).Order("id DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if run.UpdatedAt.Before(r.now().Add(-staleAfter)) {
		_ = r.Complete(run.ID, nil, errors.New("import was interrupted"))
		return false, nil
	}

	return true, nil
}
