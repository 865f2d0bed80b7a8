package entrypoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/advisor/internal/config"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "advisor.db")
	cfg.Import.Archive = true
	cfg.Import.ShortenNames = true

	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.DB.Ping())
	assert.NotNil(t, app.Pipeline)
	assert.NotNil(t, app.Imports)

	opts := app.ImportOptions()
	assert.True(t, opts.Archive)
	assert.False(t, opts.DeletePrevious)
	assert.True(t, opts.ShortenNames)

	deleted, err := app.Imports.DeleteDecks()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing", "dir", "advisor.db")

	_, err := NewApp(cfg, nil)
	assert.Error(t, err)
}
