package runs

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/importers"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ImportRun{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db, nil)
}

func TestRepository_Lifecycle(t *testing.T) {
	repo := setupTestDB(t)

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	run, err := repo.Start("cli")
	require.NoError(t, err)
	assert.NotZero(t, run.ID)
	assert.Equal(t, entities.ImportStatusRunning, run.Status)

	running, err := repo.IsRunning()
	require.NoError(t, err)
	assert.True(t, running)

	observe := repo.Observer(run.ID)
	observe(importers.Progress{Found: 5, Imported: 2})

	got, err := repo.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Found)
	assert.Equal(t, 2, got.Parsed)
	assert.Zero(t, got.Imported)

	result := &importers.Result{Found: 5, Parsed: 5, Unique: 4, Imported: 4, Deleted: 1}
	require.NoError(t, repo.Complete(run.ID, result, nil))

	latest, err = repo.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, entities.ImportStatusCompleted, latest.Status)
	assert.Equal(t, 5, latest.Parsed)
	assert.Equal(t, 4, latest.Unique)
	assert.Equal(t, 4, latest.Imported)
	assert.Equal(t, 1, latest.Deleted)
	assert.NotNil(t, latest.CompletedAt)

	running, err = repo.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)
}

func TestRepository_Complete_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		result *importers.Result
		err    error
		want   entities.ImportStatus
	}{
		{"short import", &importers.Result{Unique: 3, Imported: 2}, nil, entities.ImportStatusDegraded},
		{
			"failed source",
			&importers.Result{Unique: 1, Imported: 1, Failures: []error{&importers.FetchError{Source: "hsreplay:ranked_wild", Err: errors.New("timeout")}}},
			nil,
			entities.ImportStatusDegraded,
		},
		{"hard failure", nil, errors.New("disk full"), entities.ImportStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupTestDB(t)
			run, err := repo.Start("test")
			require.NoError(t, err)

			require.NoError(t, repo.Complete(run.ID, tt.result, tt.err))

			got, err := repo.Get(run.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestRepository_Complete_RecordsFailedSources(t *testing.T) {
	repo := setupTestDB(t)
	run, err := repo.Start("test")
	require.NoError(t, err)

	result := &importers.Result{Failures: []error{
		&importers.FetchError{Source: "metastats:decks/mage", Err: errors.New("503")},
		&importers.FetchError{Source: "hsreplay:archetypes", Err: errors.New("timeout")},
	}}
	require.NoError(t, repo.Complete(run.ID, result, nil))

	got, err := repo.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "metastats:decks/mage,hsreplay:archetypes", got.FailedSources)
	assert.Contains(t, got.Error, "503")
}

func TestRepository_IsRunning_Stale(t *testing.T) {
	repo := setupTestDB(t)

	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return start }
	run, err := repo.Start("cron")
	require.NoError(t, err)

	repo.now = func() time.Time { return start.Add(11 * time.Minute) }
	running, err := repo.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)

	got, err := repo.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ImportStatusFailed, got.Status)
}

func TestRepository_Discard(t *testing.T) {
	repo := setupTestDB(t)

	kept, err := repo.Start("api")
	require.NoError(t, err)
	rejected, err := repo.Start("api")
	require.NoError(t, err)

	require.NoError(t, repo.Discard(rejected.ID))

	latest, err := repo.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, kept.ID, latest.ID)
}

func TestRepository_Observer_LogsWriteFailures(t *testing.T) {
	repo := setupTestDB(t)
	run, err := repo.Start("test")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	repo.logger = zap.New(core)

	sqlDB, err := repo.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	repo.Observer(run.ID)(importers.Progress{Found: 3, Imported: 1})

	entries := logs.FilterMessage("failed to store import progress").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, run.ID, fields["run_id"])
	assert.EqualValues(t, 1, fields["parsed"])
	assert.Contains(t, fields, "error")
}
